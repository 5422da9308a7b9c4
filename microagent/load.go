package microagent

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Partition groups loaded agents by kind, in directory walk order.
type Partition struct {
	Repo      []*Agent
	Knowledge []*Agent
	Task      []*Agent
}

// frontMatter is the YAML front-matter shape of a microagent file.
type frontMatter struct {
	Name     string   `yaml:"name"`
	Type     Kind     `yaml:"type"`
	Version  string   `yaml:"version"`
	Agent    string   `yaml:"agent"`
	Triggers []string `yaml:"triggers"`
}

const frontMatterDelimiter = "---"

// LoadFromDir loads all .md microagent files under dir and partitions them
// by kind. Files are parsed concurrently; the partition preserves lexical
// walk order.
func LoadFromDir(ctx context.Context, dir string) (*Partition, error) {
	return LoadFS(ctx, os.DirFS(dir), ".")
}

// LoadFS is LoadFromDir over an fs.FS (e.g. embed.FS).
func LoadFS(ctx context.Context, fsys fs.FS, root string) (*Partition, error) {
	var paths []string
	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("microagent: walk dir: %w", err)
	}

	agents := make([]*Agent, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			data, err := fs.ReadFile(fsys, path)
			if err != nil {
				return fmt.Errorf("microagent: read %s: %w", path, err)
			}
			agent, err := Parse(path, data)
			if err != nil {
				return err
			}
			agents[i] = agent
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p := &Partition{}
	for _, agent := range agents {
		switch agent.Kind {
		case KindRepo:
			p.Repo = append(p.Repo, agent)
		case KindKnowledge:
			p.Knowledge = append(p.Knowledge, agent)
		case KindTask:
			p.Task = append(p.Task, agent)
		}
	}
	return p, nil
}

// Parse builds an Agent from one microagent file. The file starts with a
// YAML front-matter block between "---" lines; the rest is the content.
// Name defaults to the file base name without extension; a file without
// front matter is a repo agent holding the whole file as content.
func Parse(path string, data []byte) (*Agent, error) {
	name := baseName(path)
	raw, body, found := splitFrontMatter(string(data))
	if !found {
		return &Agent{Name: name, Kind: KindRepo, Content: strings.TrimSpace(body)}, nil
	}
	var fm frontMatter
	if err := yaml.Unmarshal([]byte(raw), &fm); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFrontMatter, path, err)
	}
	if fm.Name != "" {
		name = fm.Name
	}
	kind := fm.Type
	if kind == "" {
		kind = KindRepo
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %s: %q", ErrUnknownKind, path, kind)
	}
	return &Agent{
		Name:     name,
		Kind:     kind,
		Content:  strings.TrimSpace(body),
		Triggers: fm.Triggers,
		Version:  fm.Version,
	}, nil
}

// splitFrontMatter splits a file into its raw front matter and body.
// found is false when the file does not start with a front-matter block.
func splitFrontMatter(s string) (raw, body string, found bool) {
	trimmed := strings.TrimLeft(s, "\r\n")
	if !strings.HasPrefix(trimmed, frontMatterDelimiter+"\n") {
		return "", s, false
	}
	rest := trimmed[len(frontMatterDelimiter)+1:]
	idx := strings.Index(rest, "\n"+frontMatterDelimiter)
	if idx < 0 {
		return "", s, false
	}
	raw = rest[:idx]
	body = rest[idx+len(frontMatterDelimiter)+1:]
	if nl := strings.Index(body, "\n"); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = ""
	}
	return raw, body, true
}

func baseName(path string) string {
	base := path
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	return strings.TrimSuffix(base, ".md")
}
