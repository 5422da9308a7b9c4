package zapevents

import (
	"go.uber.org/zap"

	"github.com/agentfoundry/promptman"
)

// Ensures Events implements promptman.Events.
var _ promptman.Events = (*Events)(nil)

// Events logs microagent activity through a zap.Logger.
type Events struct {
	log *zap.Logger
}

// New creates an Events sink. A nil logger falls back to zap.NewNop.
func New(log *zap.Logger) *Events {
	if log == nil {
		log = zap.NewNop()
	}
	return &Events{log: log}
}

// MicroagentsLoaded implements promptman.Events.
func (e *Events) MicroagentsLoaded(names []string) {
	e.log.Info("loading microagents", zap.Strings("names", names))
}

// MicroagentTriggered implements promptman.Events.
func (e *Events) MicroagentTriggered(agent, trigger string) {
	e.log.Info("microagent triggered",
		zap.String("agent", agent),
		zap.String("trigger", trigger),
	)
}
