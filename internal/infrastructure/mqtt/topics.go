package mqtt

import "fmt"

// Topic prefixes for the Hearth MQTT namespace.
//
// Everything the core publishes lives under a single root:
//
//	hearth/event/{event_name}   one message per hub event
//	hearth/system/status        retained online/offline status
const (
	// TopicPrefix is the root of the Hearth topic tree.
	TopicPrefix = "hearth"

	// TopicPrefixEvent is the base for hub event topics.
	TopicPrefixEvent = "hearth/event"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "hearth/system"
)

// Topics provides builders for Hearth MQTT topics.
// Using these helpers keeps topic naming consistent across the codebase.
//
//	topics := mqtt.Topics{}
//	topics.Event("turn_on") // "hearth/event/turn_on"
type Topics struct{}

// Event returns the topic a hub event of the given name is published to.
//
// Example: hearth/event/device_added
func (Topics) Event(eventName string) string {
	return fmt.Sprintf("%s/%s", TopicPrefixEvent, eventName)
}

// SystemStatus returns the retained topic carrying the core's
// online/offline status. This is also the LWT topic.
//
// Example: hearth/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}
