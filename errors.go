package promptman

import (
	"errors"
	"fmt"
)

// Sentinel errors for template loading and rendering.
// All use prefix "promptman:" for identification. Callers should use errors.Is/errors.As.
var (
	ErrPromptDirUnset  = errors.New("promptman: prompt directory is not set")
	ErrTemplateMissing = errors.New("promptman: prompt template file not found")
	ErrTemplateParse   = errors.New("promptman: template parsing failed")
	ErrTemplateRender  = errors.New("promptman: template rendering failed")
)

// TemplateError wraps a sentinel error with the template name and file path.
// Use errors.Is(err, ErrTemplateMissing) and errors.As(err, &templateErr) to inspect.
type TemplateError struct {
	Name string
	Path string
	Err  error
}

// Error implements error.
func (e *TemplateError) Error() string {
	return fmt.Sprintf("promptman: template %q at %q: %v", e.Name, e.Path, e.Err)
}

// Unwrap returns the wrapped error for errors.Is/errors.As.
func (e *TemplateError) Unwrap() error { return e.Err }

// Compile-time check that TemplateError implements error.
var _ error = (*TemplateError)(nil)
