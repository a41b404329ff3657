package device

import (
	"fmt"
	"sort"
)

// Command names recognised by Proxy.Call. Schedules and the hub's dispatch
// use these same names.
const (
	CmdTurnOn         = "turnOn"
	CmdTurnOff        = "turnOff"
	CmdSetTemperature = "setTemperature"
	CmdLockDoor       = "lockDoor"
	CmdUnlockDoor     = "unlockDoor"
)

// commandFunc applies one named command to a device. Each closure validates
// the argument shape before mutating state, so a failed call leaves the
// device untouched.
type commandFunc func(dev Device, args []any) error

// commandTables binds each kind's command names to their implementations.
// Built once at package initialisation; resolving a command is a plain map
// lookup and a miss is ErrInvalidCommand. The type assertions inside the
// closures are safe because the factory is the only constructor and each
// kind maps to exactly one concrete type.
var commandTables = map[Kind]map[string]commandFunc{
	KindLight: {
		CmdTurnOn: func(dev Device, args []any) error {
			if err := noArgs(CmdTurnOn, args); err != nil {
				return err
			}
			dev.(*Light).TurnOn()
			return nil
		},
		CmdTurnOff: func(dev Device, args []any) error {
			if err := noArgs(CmdTurnOff, args); err != nil {
				return err
			}
			dev.(*Light).TurnOff()
			return nil
		},
	},
	KindThermostat: {
		CmdSetTemperature: func(dev Device, args []any) error {
			value, err := oneIntArg(CmdSetTemperature, args)
			if err != nil {
				return err
			}
			dev.(*Thermostat).SetTemperature(value)
			return nil
		},
	},
	KindDoor: {
		CmdLockDoor: func(dev Device, args []any) error {
			if err := noArgs(CmdLockDoor, args); err != nil {
				return err
			}
			dev.(*Door).LockDoor()
			return nil
		},
		CmdUnlockDoor: func(dev Device, args []any) error {
			if err := noArgs(CmdUnlockDoor, args); err != nil {
				return err
			}
			dev.(*Door).UnlockDoor()
			return nil
		},
	},
}

// Commands returns the sorted command names valid for a kind. An unknown
// kind yields an empty slice.
func Commands(kind Kind) []string {
	table := commandTables[kind]
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// noArgs rejects any arguments for zero-argument commands.
func noArgs(cmd string, args []any) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: %s takes no arguments, got %d", ErrInvalidCommand, cmd, len(args))
	}
	return nil
}

// oneIntArg extracts a single integer argument, coercing the numeric types
// that reach us from literals, config, and decoded JSON.
func oneIntArg(cmd string, args []any) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: %s takes one argument, got %d", ErrInvalidCommand, cmd, len(args))
	}
	switch v := args[0].(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("%w: %s argument must be an integer, got %T", ErrInvalidCommand, cmd, args[0])
	}
}
