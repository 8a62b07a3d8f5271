package events

// Collector accumulates domain events raised during a unit of work so they
// can be stored to the outbox in the same transaction as the state change.
type Collector struct {
	events []DomainEvent
}

// Record appends domain events to the collector.
func (c *Collector) Record(events ...DomainEvent) {
	c.events = append(c.events, events...)
}

// Events returns the collected domain events without clearing them.
func (c *Collector) Events() []DomainEvent {
	return c.events
}

// Drain returns the collected domain events and clears the internal slice.
func (c *Collector) Drain() []DomainEvent {
	collected := c.events
	c.events = nil
	return collected
}
