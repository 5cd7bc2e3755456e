package components

// Class identifies which marker an entity carries.
type Class uint8

const (
	ClassOther Class = iota
	ClassPlayer
	ClassAsteroid
	ClassProjectile
)

// String returns the display name for a Class.
func (c Class) String() string {
	names := ClassNames()
	if int(c) < len(names) {
		return names[c]
	}
	return "unknown"
}

// ClassNames returns the display names for all classes.
// The order matches the Class constants.
func ClassNames() []string {
	return []string{"other", "player", "asteroid", "projectile"}
}

// MarshalText implements encoding.TextMarshaler so classes read well in JSON snapshots.
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
