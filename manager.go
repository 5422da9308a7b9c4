package promptman

import (
	"context"
	"fmt"
	"io/fs"
	"maps"
	"strings"

	"github.com/agentfoundry/promptman/microagent"
)

// Manager loads prompt templates and microagents and composes messages for
// a single conversation. It is owned by exactly one session; concurrent use
// from multiple goroutines is not supported.
type Manager struct {
	promptDir     string
	microagentDir string
	fsys          fs.FS
	disabled      map[string]struct{}
	events        Events

	system         *promptTemplate
	user           *promptTemplate
	additionalInfo *promptTemplate
	microagentInfo *promptTemplate

	// Registries keyed by name. Iteration follows insertion order, so the
	// name slices are the source of truth for order.
	knowledgeNames []string
	knowledge      map[string]*microagent.Agent
	repoNames      []string
	repo           map[string]*microagent.Agent

	repositoryInfo *RepositoryInfo
	runtimeInfo    RuntimeInfo
}

// TriggeredAgent pairs a knowledge microagent with the trigger keyword that
// matched. Passed to the microagent_info template as .TriggeredAgents.
type TriggeredAgent struct {
	Agent       *microagent.Agent
	TriggerWord string
}

// additionalInfoData is the render data for the additional_info template.
// RepositoryInfo is nil until SetRepositoryInfo is called; templates are
// expected to guard it with {{ if }}.
type additionalInfoData struct {
	RepositoryInstructions string
	RepositoryInfo         *RepositoryInfo
	RuntimeInfo            RuntimeInfo
}

// microagentInfoData is the render data for the microagent_info template.
type microagentInfoData struct {
	TriggeredAgents []TriggeredAgent
}

// New creates a Manager and eagerly loads the four prompt templates from
// promptDir. A missing directory or template file is a fatal load error.
// With WithMicroagentDir, microagents are loaded, partitioned by kind, and
// registered unless named in the disable-list.
func New(promptDir string, opts ...Option) (*Manager, error) {
	m := &Manager{
		promptDir:   promptDir,
		disabled:    make(map[string]struct{}),
		events:      NopEvents{},
		knowledge:   make(map[string]*microagent.Agent),
		repo:        make(map[string]*microagent.Agent),
		runtimeInfo: RuntimeInfo{AvailableHosts: map[string]int{}},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.promptDir == "" {
		return nil, ErrPromptDirUnset
	}
	var err error
	if m.system, err = loadTemplate(m.fsys, m.promptDir, systemTemplateFile); err != nil {
		return nil, err
	}
	if m.user, err = loadTemplate(m.fsys, m.promptDir, userTemplateFile); err != nil {
		return nil, err
	}
	if m.additionalInfo, err = loadTemplate(m.fsys, m.promptDir, additionalInfoTemplateFile); err != nil {
		return nil, err
	}
	if m.microagentInfo, err = loadTemplate(m.fsys, m.promptDir, microagentInfoTemplateFile); err != nil {
		return nil, err
	}
	if m.microagentDir != "" {
		if err := m.loadMicroagentDir(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Manager) loadMicroagentDir() error {
	var (
		part *microagent.Partition
		err  error
	)
	ctx := context.Background()
	if m.fsys != nil {
		part, err = microagent.LoadFS(ctx, m.fsys, m.microagentDir)
	} else {
		part, err = microagent.LoadFromDir(ctx, m.microagentDir)
	}
	if err != nil {
		return err
	}
	// A partition that disagrees with its agents' kinds is a loader bug.
	for _, agent := range part.Knowledge {
		mustKind(agent, microagent.KindKnowledge)
	}
	for _, agent := range part.Repo {
		mustKind(agent, microagent.KindRepo)
	}
	for _, agent := range part.Knowledge {
		m.register(agent)
	}
	for _, agent := range part.Repo {
		m.register(agent)
	}
	return nil
}

func mustKind(agent *microagent.Agent, kind microagent.Kind) {
	if agent.Kind != kind {
		panic(fmt.Sprintf("promptman: agent %q in %s partition has kind %s", agent.Name, kind, agent.Kind))
	}
}

// register adds an agent to the registry for its kind, unless disabled.
// Agents that are neither knowledge nor repo are silently dropped.
// Re-registering a name replaces the agent but keeps its position.
func (m *Manager) register(agent *microagent.Agent) {
	if _, ok := m.disabled[agent.Name]; ok {
		return
	}
	switch agent.Kind {
	case microagent.KindKnowledge:
		if _, ok := m.knowledge[agent.Name]; !ok {
			m.knowledgeNames = append(m.knowledgeNames, agent.Name)
		}
		m.knowledge[agent.Name] = agent
	case microagent.KindRepo:
		if _, ok := m.repo[agent.Name]; !ok {
			m.repoNames = append(m.repoNames, agent.Name)
		}
		m.repo[agent.Name] = agent
	}
}

// LoadMicroagents merges externally loaded microagents into the registries,
// typically after a workspace scan discovers repo-local microagents. The
// disable-list applies; kinds other than knowledge and repo are dropped.
func (m *Manager) LoadMicroagents(agents []*microagent.Agent) {
	names := make([]string, 0, len(agents))
	for _, agent := range agents {
		names = append(names, agent.Name)
	}
	m.events.MicroagentsLoaded(names)
	for _, agent := range agents {
		m.register(agent)
	}
}

// KnowledgeAgent returns the registered knowledge microagent with the given
// name.
func (m *Manager) KnowledgeAgent(name string) (*microagent.Agent, bool) {
	agent, ok := m.knowledge[name]
	return agent, ok
}

// KnowledgeAgents returns registered knowledge microagents in registration
// order.
func (m *Manager) KnowledgeAgents() []*microagent.Agent {
	agents := make([]*microagent.Agent, 0, len(m.knowledgeNames))
	for _, name := range m.knowledgeNames {
		agents = append(agents, m.knowledge[name])
	}
	return agents
}

// RepoAgents returns registered repo microagents in registration order.
func (m *Manager) RepoAgents() []*microagent.Agent {
	agents := make([]*microagent.Agent, 0, len(m.repoNames))
	for _, name := range m.repoNames {
		agents = append(agents, m.repo[name])
	}
	return agents
}

// SystemMessage renders the system template with no variables and returns
// the trimmed text. Idempotent.
func (m *Manager) SystemMessage() (string, error) {
	return m.system.render(nil)
}

// ExampleUserMessage renders the user template with no variables. This is
// the demonstration message shown to the agent before actual user
// instructions; it may be empty.
func (m *Manager) ExampleUserMessage() (string, error) {
	return m.user.render(nil)
}

// SetRuntimeInfo copies the runtime collaborator's exposed-host mapping
// into the manager's runtime info. The mapping is not validated.
func (m *Manager) SetRuntimeInfo(runtime Runtime) {
	m.runtimeInfo.AvailableHosts = maps.Clone(runtime.WebHosts())
}

// SetRepositoryInfo records the cloned repository's name (e.g. "owner/repo")
// and checkout directory. Overwrites unconditionally; last caller wins.
func (m *Manager) SetRepositoryInfo(repoName, repoDirectory string) {
	m.repositoryInfo = &RepositoryInfo{RepoName: repoName, RepoDirectory: repoDirectory}
}

// EnhanceMessage scans the message's user text for knowledge microagent
// triggers and prepends the rendered microagent info when any match.
//
// The last text part is the authoritative user text: any previously injected
// context precedes it. Every registered knowledge agent is checked, in
// registration order, with no short-circuit on the first match. A message
// with no text is left unchanged.
func (m *Manager) EnhanceMessage(message *Message) error {
	if message == nil || len(message.Content) == 0 {
		return nil
	}
	text, ok := message.LastText()
	if !ok || text == "" {
		return nil
	}
	var triggered []TriggeredAgent
	for _, name := range m.knowledgeNames {
		agent := m.knowledge[name]
		trigger, matched := agent.MatchTrigger(text)
		if !matched {
			continue
		}
		m.events.MicroagentTriggered(name, trigger)
		triggered = append(triggered, TriggeredAgent{Agent: agent, TriggerWord: trigger})
	}
	if len(triggered) == 0 {
		return nil
	}
	info, err := m.BuildMicroagentInfo(triggered)
	if err != nil {
		return err
	}
	message.PrependText(info)
	return nil
}

// AddExamplesToInitialMessage prepends the rendered example user message to
// the first user message, if the render is non-empty.
func (m *Manager) AddExamplesToInitialMessage(message *Message) error {
	example, err := m.ExampleUserMessage()
	if err != nil {
		return err
	}
	if example != "" {
		message.PrependText(example)
	}
	return nil
}

// AddInfoToInitialMessage prepends repository and runtime context to the
// initial user message, if the rendered additional info is non-empty.
//
// At most one repo microagent may be registered; more is a configuration
// bug and panics.
func (m *Manager) AddInfoToInitialMessage(message *Message) error {
	if len(m.repoNames) > 1 {
		panic(fmt.Sprintf("promptman: expecting at most one repo microagent, found %d: %v", len(m.repoNames), m.repoNames))
	}
	instructions := make([]string, 0, len(m.repoNames))
	for _, name := range m.repoNames {
		instructions = append(instructions, m.repo[name].Content)
	}
	info, err := m.additionalInfo.render(additionalInfoData{
		RepositoryInstructions: strings.Join(instructions, "\n\n"),
		RepositoryInfo:         m.repositoryInfo,
		RuntimeInfo:            m.runtimeInfo,
	})
	if err != nil {
		return err
	}
	if info != "" {
		message.PrependText(info)
	}
	return nil
}

// BuildMicroagentInfo renders the microagent_info template with the
// triggered agents and returns the trimmed text. Pure; no side effects.
func (m *Manager) BuildMicroagentInfo(triggered []TriggeredAgent) (string, error) {
	return m.microagentInfo.render(microagentInfoData{TriggeredAgents: triggered})
}

// turnsReminderFormat is appended verbatim to the targeted user message.
const turnsReminderFormat = "\n\nENVIRONMENT REMINDER: You have %d turns left to complete the task. When finished reply with <finish></finish>."

// AddTurnsLeftReminder appends a remaining-turns reminder to the
// second-most-recent user message that contains text, counting from the end
// of messages. The most recent such message is intentionally skipped. No-op
// when no such message exists.
func (m *Manager) AddTurnsLeftReminder(messages []*Message, state IterationState) {
	target := reminderTarget(messages)
	if target == nil {
		return
	}
	target.AppendText(fmt.Sprintf(turnsReminderFormat, state.MaxIterations()-state.Iteration()))
}

func reminderTarget(messages []*Message) *Message {
	seen := 0
	for i := len(messages) - 1; i >= 0; i-- {
		message := messages[i]
		if message.Role != RoleUser || !message.HasText() {
			continue
		}
		seen++
		if seen == 2 {
			return message
		}
	}
	return nil
}
