package promptman

// Events receives notifications about microagent activity. Implementations
// decide how to record them (see the zapevents subpackage); the manager
// itself never logs. Methods must not block.
type Events interface {
	// MicroagentsLoaded is called after a batch of microagents is merged
	// into the registries, with the names that were offered (including any
	// filtered out by the disable-list).
	MicroagentsLoaded(names []string)
	// MicroagentTriggered is called when a knowledge microagent matches a
	// trigger keyword in user text.
	MicroagentTriggered(agent, trigger string)
}

// NopEvents discards all events. It is the default when no Events is set.
type NopEvents struct{}

// MicroagentsLoaded implements Events.
func (NopEvents) MicroagentsLoaded([]string) {}

// MicroagentTriggered implements Events.
func (NopEvents) MicroagentTriggered(string, string) {}

// Compile-time check that NopEvents implements Events.
var _ Events = NopEvents{}
