package microagent

import "errors"

// Sentinel errors for microagent loading.
// All use prefix "microagent:" for identification. Callers should use errors.Is.
var (
	ErrInvalidFrontMatter = errors.New("microagent: front matter is malformed")
	ErrUnknownKind        = errors.New("microagent: unknown microagent kind")
)
