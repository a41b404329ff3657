package device

import (
	"fmt"
	"strings"
)

// Token is the access credential fixed to a Proxy at creation. There are
// exactly two tiers: admin commands anything, public commands lights only.
type Token string

// Access tokens.
const (
	// TokenAdmin may invoke any valid command on any device.
	TokenAdmin Token = "admin"

	// TokenPublic may only invoke commands on devices of kind light.
	TokenPublic Token = "public"
)

// ParseToken normalises a token string (case-insensitive) and validates it.
// This is a configuration-boundary check; Proxy itself accepts any token
// value and simply treats everything that is not admin as unprivileged.
func ParseToken(s string) (Token, error) {
	switch Token(strings.ToLower(s)) {
	case TokenAdmin:
		return TokenAdmin, nil
	case TokenPublic:
		return TokenPublic, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownToken, s)
	}
}

// Proxy pairs exactly one device with one access token and mediates every
// command to it. The rest of the system never touches a Device directly;
// the hub's registry stores proxies, so authorisation cannot be skipped.
type Proxy struct {
	dev   Device
	token Token
}

// NewProxy wraps dev with the given access token. The pairing is immutable.
func NewProxy(dev Device, token Token) *Proxy {
	return &Proxy{dev: dev, token: token}
}

// Call authorises and dispatches a named command against the wrapped device.
//
// The sequence is:
//  1. Privilege check: a non-admin token may only command lights.
//  2. Resolve the command name in the kind's table.
//  3. Invoke the bound closure, which validates argument shape and mutates
//     the device.
//
// On any failure the device state is unchanged and a sentinel-wrapped error
// is returned: ErrUnauthorized for a privilege failure, ErrInvalidCommand
// for a table miss or argument mismatch.
func (p *Proxy) Call(command string, args ...any) error {
	if p.token != TokenAdmin && p.dev.Kind() != KindLight {
		return fmt.Errorf("%w: token %q may not command %s %d",
			ErrUnauthorized, p.token, p.dev.Kind(), p.dev.ID())
	}

	fn, ok := commandTables[p.dev.Kind()][command]
	if !ok {
		return fmt.Errorf("%w: %q is not valid for kind %s (valid: %s)",
			ErrInvalidCommand, command, p.dev.Kind(), strings.Join(Commands(p.dev.Kind()), ", "))
	}

	return fn(p.dev, args)
}

// StatusReport returns the wrapped device's status line. It always succeeds
// and requires no privilege.
func (p *Proxy) StatusReport() string {
	return p.dev.StatusReport()
}
