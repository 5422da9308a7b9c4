package promptman

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
)

// Fixed template file names resolved relative to the prompt directory.
// Absence of any of them is a construction-time error, no fallback.
const (
	systemTemplateFile         = "system_prompt.tmpl"
	userTemplateFile           = "user_prompt.tmpl"
	additionalInfoTemplateFile = "additional_info.tmpl"
	microagentInfoTemplateFile = "microagent_info.tmpl"
)

// promptTemplate is a compiled template. Immutable after load; never reloaded.
type promptTemplate struct {
	name string
	tpl  *template.Template
}

// loadTemplate reads and compiles one template file from dir, either on the
// given fs.FS or on the local filesystem when fsys is nil.
func loadTemplate(fsys fs.FS, dir, file string) (*promptTemplate, error) {
	var (
		full string
		data []byte
		err  error
	)
	if fsys != nil {
		full = path.Join(dir, file)
		data, err = fs.ReadFile(fsys, full)
	} else {
		full = filepath.Join(dir, file)
		data, err = os.ReadFile(full) // #nosec G304 -- path comes from the caller's prompt directory
	}
	if err != nil {
		return nil, &TemplateError{Name: file, Path: full, Err: ErrTemplateMissing}
	}
	tpl, err := template.New(file).Funcs(defaultFuncMap()).Parse(string(data))
	if err != nil {
		return nil, &TemplateError{Name: file, Path: full, Err: fmt.Errorf("%w: %w", ErrTemplateParse, err)}
	}
	return &promptTemplate{name: file, tpl: tpl}, nil
}

// render executes the template with data and returns the trimmed output.
func (t *promptTemplate) render(data any) (string, error) {
	var buf bytes.Buffer
	if err := t.tpl.Execute(&buf, data); err != nil {
		return "", &TemplateError{Name: t.name, Err: fmt.Errorf("%w: %w", ErrTemplateRender, err)}
	}
	return strings.TrimSpace(buf.String()), nil
}
