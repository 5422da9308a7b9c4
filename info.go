package promptman

// RepositoryInfo describes a repository that has been cloned into the
// workspace. Absent (nil on the Manager) until SetRepositoryInfo is called.
type RepositoryInfo struct {
	RepoName      string
	RepoDirectory string
}

// RuntimeInfo holds the runtime's exposed host to port mapping.
type RuntimeInfo struct {
	AvailableHosts map[string]int
}

// Runtime is the runtime collaborator consumed by SetRuntimeInfo.
// Only the exposed-host mapping is needed here.
type Runtime interface {
	WebHosts() map[string]int
}

// IterationState is the conversation-state collaborator consumed by
// AddTurnsLeftReminder to compute remaining turns.
type IterationState interface {
	MaxIterations() int
	Iteration() int
}
