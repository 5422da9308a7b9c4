package promptman

import "io/fs"

// Option configures a Manager (functional options pattern).
type Option func(*Manager)

// WithMicroagentDir sets a directory of microagent files to load and
// register at construction time.
func WithMicroagentDir(dir string) Option {
	return func(m *Manager) {
		m.microagentDir = dir
	}
}

// WithDisabled sets microagent names that are never registered, neither
// from the microagent directory nor via LoadMicroagents.
func WithDisabled(names ...string) Option {
	return func(m *Manager) {
		for _, name := range names {
			m.disabled[name] = struct{}{}
		}
	}
}

// WithEvents sets the Events sink notified about microagent activity.
func WithEvents(events Events) Option {
	return func(m *Manager) {
		if events != nil {
			m.events = events
		}
	}
}

// WithFS makes the Manager read templates and the microagent directory from
// fsys (e.g. embed.FS) instead of the local filesystem. Paths are resolved
// within fsys.
func WithFS(fsys fs.FS) Option {
	return func(m *Manager) {
		m.fsys = fsys
	}
}
