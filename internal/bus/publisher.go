package bus

// Publisher binds a Bus to a writer identity so stores can announce changes
// without seeing their own notifications echoed back.
type Publisher struct {
	bus   *Bus
	token Token
}

// NewPublisher issues a fresh token on b and wraps it.
func NewPublisher(b *Bus) *Publisher {
	return &Publisher{bus: b, token: b.NewToken()}
}

// Token returns the writer identity, for subscribing with self-suppression.
func (p *Publisher) Token() Token {
	return p.token
}

// Publish forwards to the bus tagged with the writer's token.
func (p *Publisher) Publish(topic string) {
	p.bus.PublishFrom(topic, p.token)
}
