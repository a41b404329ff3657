package hub

// Event names broadcast to observers. Each successful state-changing hub
// operation emits exactly one event; failed operations emit nothing.
//
// Payload keys are stable per event:
//
//	EventDeviceAdded    id (int), type (string)
//	EventTurnOn         id (int)
//	EventTurnOff        id (int)
//	EventSetTemp        id (int), temp (int)
//	EventLock           id (int)
//	EventUnlock         id (int)
//	EventScheduleAdded  id (int), time (string), cmd (string)
const (
	EventDeviceAdded   = "device_added"
	EventTurnOn        = "turn_on"
	EventTurnOff       = "turn_off"
	EventSetTemp       = "set_temp"
	EventLock          = "lock"
	EventUnlock        = "unlock"
	EventScheduleAdded = "schedule_added"
)
