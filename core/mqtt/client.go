// Package mqtt defines the topics and payloads of the live ride-event
// stream and the publisher contract transports implement.
package mqtt

// Publisher sends one payload to a topic.
type Publisher interface {
	Publish(topic string, payload []byte) error
}
