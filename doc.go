// Package promptman assembles prompts for a conversational agent.
// It renders templated system and user messages, injects repository and
// runtime context into the initial message, and prepends microagent
// knowledge snippets triggered by keywords in user text.
package promptman
