// Package microagent provides the domain model for microagents — small
// Markdown-defined knowledge snippets with YAML front matter, activated by
// trigger keywords or attached to a repository.
package microagent
