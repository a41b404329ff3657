package device

import "errors"

// Domain errors for the device package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, device.ErrUnauthorized) {
//	    // handle rejected command
//	}
var (
	// ErrUnknownKind is returned when the factory is given a kind it does
	// not recognise.
	ErrUnknownKind = errors.New("device: unknown kind")

	// ErrUnknownToken is returned when a token value is neither admin nor
	// public. Only the configuration boundary parses tokens; a Proxy treats
	// anything that is not admin as unprivileged.
	ErrUnknownToken = errors.New("device: unknown token")

	// ErrUnauthorized is returned when a non-admin token attempts a command
	// on anything other than a light.
	ErrUnauthorized = errors.New("device: unauthorized")

	// ErrInvalidCommand is returned when a command name is not in the
	// device kind's table, or the argument count or types do not match.
	ErrInvalidCommand = errors.New("device: invalid command")
)
