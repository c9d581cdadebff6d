package message

import "go.uber.org/zap"

// Broker is the shared narrative channel. Battles, sessions and scripts raise
// text through it; sessions and frontends subscribe to it.
type Broker struct {
	signal Signal[string]
	logger *zap.Logger
}

// NewBroker creates a Broker with no subscribers.
//
// Precondition: logger must be non-nil.
func NewBroker(logger *zap.Logger) *Broker {
	return &Broker{logger: logger}
}

// Subscribe registers fn to receive every raised message.
func (b *Broker) Subscribe(fn func(string)) Subscription {
	return b.signal.Subscribe(fn)
}

// Unsubscribe removes a subscriber.
func (b *Broker) Unsubscribe(id Subscription) {
	b.signal.Unsubscribe(id)
}

// Subscribers returns the number of active subscribers.
func (b *Broker) Subscribers() int {
	return b.signal.Len()
}

// Raise delivers msg to every subscriber in subscription order.
func (b *Broker) Raise(msg string) {
	b.logger.Debug("game message", zap.String("text", msg))
	b.signal.Publish(msg)
}
