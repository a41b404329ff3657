// Package device models the controllable endpoints managed by Hearth Core.
//
// A device is one of three kinds — light, thermostat, or door — each with a
// small piece of mutable state and a fixed set of named commands. The package
// provides three cooperating pieces:
//
//   - The factory (New) constructs a device of a requested kind with its
//     documented initial state, rejecting unrecognised kinds.
//   - The command tables (commands.go) bind each kind's command names to
//     typed closures. Dispatch is a plain name lookup; there is no
//     reflection anywhere in the call path.
//   - The Proxy pairs one device with one access token and is the only way
//     the rest of the system touches a device. It authorises the caller
//     before resolving the command.
//
// # Key Types
//
//   - Device: interface over the three concrete kinds (identity, kind, status)
//   - Light, Thermostat, Door: concrete device state
//   - Proxy: access-gated command dispatcher for a single device
//   - Token: two-tier access credential (admin or public)
//
// # Usage
//
//	dev, err := device.New(1, "light")
//	if err != nil {
//	    return err
//	}
//	proxy := device.NewProxy(dev, device.TokenAdmin)
//	if err := proxy.Call(device.CmdTurnOn); err != nil {
//	    return err
//	}
//	fmt.Println(proxy.StatusReport()) // "Light 1 is on"
//
// # Thread Safety
//
// Devices and proxies carry no locking of their own. The hub serialises all
// access behind its coarse lock; anything else driving a Proxy concurrently
// must provide its own synchronisation.
package device
