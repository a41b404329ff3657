// Package hub provides the central coordinator for Hearth Core.
//
// The hub owns three things: the device registry (proxies keyed by numeric
// ID), the observer list, and the command schedule. Every state change in
// the system flows through a hub operation, which authorises the command via
// the device proxy, applies it, and broadcasts exactly one event to the
// observers.
//
// Architecture:
//
//	┌─────────────────────────────────────────────────────────┐
//	│                     Hub (hub.go)                         │
//	│  Single mutex serialises every operation                 │
//	│                                                          │
//	│  ┌─────────────────┐   ┌──────────────┐   ┌──────────┐ │
//	│  │ Device Registry  │   │   Schedule   │   │ Observers │ │
//	│  │ id → *Proxy      │   │   []Entry    │   │ ordered  │ │
//	│  │ + insertion order│   │              │   │ fan-out  │ │
//	│  └─────────────────┘   └──────────────┘   └──────────┘ │
//	│         │                     │                 ▲       │
//	│         ▼                     ▼                 │       │
//	│  ┌──────────────────────────────────────────────┐      │
//	│  │  Operation Pipeline                           │      │
//	│  │  1. Resolve proxy by ID                       │      │
//	│  │  2. Proxy authorises + dispatches command     │      │
//	│  │  3. On success: emit event (sync, in order)   │      │
//	│  │  4. On failure: no mutation, no event         │      │
//	│  └──────────────────────────────────────────────┘      │
//	└─────────────────────────────────────────────────────────┘
//	                          ▲
//	                          │ RunPending("15:04")
//	                ┌─────────┴─────────┐
//	                │ Ticker (ticker.go) │
//	                └───────────────────┘
//
// # Key Types
//
//   - Hub: the coordinator; all methods are safe for concurrent use
//   - Entry: one schedule line (device ID, "15:04" trigger, command name)
//   - Observer: event sink contract; see ConsoleObserver and LogObserver
//   - Ticker: clock driver that calls RunPending once per interval
//
// # Event Ordering
//
// Observers are notified synchronously, under the hub lock, in the order
// they were registered. Because the lock also serialises operations, every
// observer sees the same total event order, and an event is only ever
// emitted after its operation has fully applied. The cost of this guarantee
// is the Observer contract: Notify must not call back into the hub and must
// bound its own I/O.
//
// # Scheduling
//
// Schedule entries are matched by string equality against a "15:04"
// wall-clock value. Entries are stored unvalidated, so schedules can name
// devices that are registered later; a firing entry whose device is missing
// fails with ErrDeviceNotFound without disturbing other entries. RunPending
// is stateless across calls: the same time fires the same entries again.
//
// # Usage
//
//	h := hub.New()
//	h.SetLogger(log)
//	h.AddObserver(hub.NewConsoleObserver(os.Stdout))
//
//	if err := h.AddDevice(1, "light", device.TokenPublic); err != nil {
//	    return err
//	}
//	if err := h.TurnOn(1); err != nil {
//	    return err
//	}
//
//	h.SetSchedule(1, "23:30", device.CmdTurnOff)
//	ticker := hub.NewTicker(h, 0, nil)
//	if err := ticker.Start(ctx); err != nil {
//	    return err
//	}
//	defer ticker.Stop()
package hub
