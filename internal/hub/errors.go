package hub

import "errors"

// Domain errors for the hub package. Command dispatch failures surface the
// device package sentinels (device.ErrUnauthorized, device.ErrInvalidCommand)
// unchanged; only registry lookups add an error of their own.
//
// These errors can be checked using errors.Is():
//
//	if errors.Is(err, hub.ErrDeviceNotFound) {
//	    // handle unknown device id
//	}
var (
	// ErrDeviceNotFound is returned when a device ID is not registered.
	ErrDeviceNotFound = errors.New("hub: device not found")
)
