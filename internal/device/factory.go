package device

import (
	"fmt"
	"strings"
)

// validKinds is the set of kinds the factory recognises.
// Built once at init for O(1) lookup.
var validKinds map[Kind]struct{}

func init() {
	validKinds = make(map[Kind]struct{}, len(AllKinds()))
	for _, k := range AllKinds() {
		validKinds[k] = struct{}{}
	}
}

// ParseKind normalises a kind string (case-insensitive) and validates it
// against the recognised kinds.
//
// Returns:
//   - Kind: the canonical lowercase kind
//   - error: ErrUnknownKind if the value is not recognised
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(s))
	if _, ok := validKinds[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// New constructs a device of the requested kind with its documented initial
// state: lights start off, thermostats at DefaultTemperature, doors locked.
// The kind is matched case-insensitively; construction never fails for a
// recognised kind.
//
// Parameters:
//   - id: caller-assigned identifier (unique positive integer by convention)
//   - kind: requested kind, e.g. "light", "Thermostat", "DOOR"
//
// Returns:
//   - Device: the constructed device
//   - error: ErrUnknownKind if the kind is not recognised (no device returned)
func New(id int, kind string) (Device, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}

	switch k {
	case KindLight:
		return NewLight(id), nil
	case KindThermostat:
		return NewThermostat(id), nil
	case KindDoor:
		return NewDoor(id), nil
	default:
		// Unreachable: ParseKind only returns kinds from AllKinds.
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
