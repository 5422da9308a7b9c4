package microagent

import (
	"slices"
	"strings"
)

// Kind categorizes the microagent's capability. It is an explicit field,
// dispatched by a switch at registration time, never by type tests.
type Kind string

const (
	// KindKnowledge marks agents activated by trigger keywords in user text.
	KindKnowledge Kind = "knowledge"
	// KindRepo marks agents holding always-included instructions for a repository.
	KindRepo Kind = "repo"
	// KindTask marks task agents; the prompt layer ignores them.
	KindTask Kind = "task"
)

// ValidKinds lists all valid microagent kinds.
var ValidKinds = []Kind{KindKnowledge, KindRepo, KindTask}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return slices.Contains(ValidKinds, k)
}

// Agent is a single microagent. Immutable after load.
type Agent struct {
	Name     string
	Kind     Kind
	Content  string
	Triggers []string // trigger keywords; only meaningful for KindKnowledge
	Version  string
}

// MatchTrigger returns the first trigger keyword contained in text
// (case-insensitive substring match) and true, or "" and false when no
// trigger matches.
func (a *Agent) MatchTrigger(text string) (string, bool) {
	lowered := strings.ToLower(text)
	for _, trigger := range a.Triggers {
		if trigger == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(trigger)) {
			return trigger, true
		}
	}
	return "", false
}
