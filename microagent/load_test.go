package microagent

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParse_KnowledgeAgent(t *testing.T) {
	t.Parallel()
	agent, err := Parse("agents/kubernetes.md", []byte(`---
name: kubernetes
type: knowledge
version: 1.0.0
agent: CodeActAgent
triggers:
  - kubectl
  - kubernetes
---

Use kubectl with the --context flag.
`))
	require.NoError(t, err)
	assert.Equal(t, "kubernetes", agent.Name)
	assert.Equal(t, KindKnowledge, agent.Kind)
	assert.Equal(t, "1.0.0", agent.Version)
	assert.Equal(t, []string{"kubectl", "kubernetes"}, agent.Triggers)
	assert.Equal(t, "Use kubectl with the --context flag.", agent.Content)
}

func TestParse_NameDefaultsToFileName(t *testing.T) {
	t.Parallel()
	agent, err := Parse("agents/git-tips.md", []byte(`---
type: knowledge
triggers:
  - rebase
---

Prefer rebase over merge.
`))
	require.NoError(t, err)
	assert.Equal(t, "git-tips", agent.Name)
}

func TestParse_MissingTypeDefaultsToRepo(t *testing.T) {
	t.Parallel()
	agent, err := Parse("instructions.md", []byte(`---
name: instructions
---

Run make test before pushing.
`))
	require.NoError(t, err)
	assert.Equal(t, KindRepo, agent.Kind)
}

func TestParse_NoFrontMatterIsRepoAgent(t *testing.T) {
	t.Parallel()
	agent, err := Parse("notes.md", []byte("Plain repository instructions.\n"))
	require.NoError(t, err)
	assert.Equal(t, KindRepo, agent.Kind)
	assert.Equal(t, "notes", agent.Name)
	assert.Equal(t, "Plain repository instructions.", agent.Content)
}

func TestParse_UnknownKind(t *testing.T) {
	t.Parallel()
	_, err := Parse("weird.md", []byte(`---
type: wizard
---

body
`))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestParse_MalformedFrontMatter(t *testing.T) {
	t.Parallel()
	_, err := Parse("broken.md", []byte("---\n: : not yaml : :\n---\n\nbody\n"))
	assert.ErrorIs(t, err, ErrInvalidFrontMatter)
}

func TestLoadFromDir_Partitions(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
	}
	write("docker.md", "---\ntype: knowledge\ntriggers:\n  - docker\n---\n\nDocker advice.\n")
	write("repo.md", "---\ntype: repo\n---\n\nRepo instructions.\n")
	write("release.md", "---\ntype: task\n---\n\nRelease steps.\n")
	write("ignored.txt", "not a microagent")

	part, err := LoadFromDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, part.Knowledge, 1)
	require.Len(t, part.Repo, 1)
	require.Len(t, part.Task, 1)
	assert.Equal(t, "docker", part.Knowledge[0].Name)
	assert.Equal(t, "repo", part.Repo[0].Name)
	assert.Equal(t, "release", part.Task[0].Name)
}

func TestLoadFromDir_WalkOrder(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	for _, name := range []string{"zebra.md", "alpha.md", "mango.md"} {
		content := "---\ntype: knowledge\ntriggers:\n  - " + name + "\n---\n\nbody\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
	}
	part, err := LoadFromDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, part.Knowledge, 3)
	// Lexical walk order regardless of parse concurrency.
	assert.Equal(t, "alpha", part.Knowledge[0].Name)
	assert.Equal(t, "mango", part.Knowledge[1].Name)
	assert.Equal(t, "zebra", part.Knowledge[2].Name)
}

func TestLoadFromDir_PropagatesParseError(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.md"), []byte("---\ntype: wizard\n---\n\nbody\n"), 0600))
	_, err := LoadFromDir(context.Background(), dir)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestLoadFromDir_MissingDir(t *testing.T) {
	t.Parallel()
	_, err := LoadFromDir(context.Background(), filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestLoadFS(t *testing.T) {
	t.Parallel()
	fsys := fstest.MapFS{
		"agents/docker.md": {Data: []byte("---\ntype: knowledge\ntriggers:\n  - docker\n---\n\nDocker advice.\n")},
		"agents/repo.md":   {Data: []byte("Repo instructions without front matter.\n")},
	}
	part, err := LoadFS(context.Background(), fsys, "agents")
	require.NoError(t, err)
	require.Len(t, part.Knowledge, 1)
	require.Len(t, part.Repo, 1)
	assert.Equal(t, "Repo instructions without front matter.", part.Repo[0].Content)
}

func TestLoadFS_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fsys := fstest.MapFS{
		"a.md": {Data: []byte("---\ntype: repo\n---\n\nbody\n")},
	}
	_, err := LoadFS(ctx, fsys, ".")
	assert.ErrorIs(t, err, context.Canceled)
}
