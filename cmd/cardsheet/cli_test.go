package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/youruser/cardsheet/internal/config"
	"github.com/youruser/cardsheet/internal/errs"
)

const deckCSV = `type,url,top,center,bottom
song,https://example.com/1,Bohemian Rhapsody,1975,Queen
video,https://example.com/2,Thriller,,Michael Jackson
song,https://example.com/3,Yesterday,1965,The Beatles
`

// setup points the global flags at a temp data dir holding deckCSV.
func setup(t *testing.T) string {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.Default()
	ws := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(ws, "deck.csv"), []byte(deckCSV), 0o644))
	dataDir = ws
	t.Cleanup(func() {
		dataDir, csvName, outPath, deckName = "", "", "", ""
		onlyTypes = nil
		force = false
	})
	return ws
}

func newCmd() (*cobra.Command, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	return cmd, buf
}

func TestGenerate(t *testing.T) {
	ws := setup(t)
	outPath = filepath.Join(ws, "out", "deck.pdf")

	cmd, buf := newCmd()
	require.NoError(t, runRender(cmd, "pdf"))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Contains(t, buf.String(), "3 cards on 4 pages")
}

func TestPreviewDefaultPath(t *testing.T) {
	ws := setup(t)
	cfg.Output.Path = filepath.Join(ws, "outputs", "output.pdf")

	cmd, _ := newCmd()
	require.NoError(t, runRender(cmd, "png"))
	_, err := os.Stat(filepath.Join(ws, "outputs", "output.zip"))
	assert.NoError(t, err)
}

func TestGenerateTypeFilter(t *testing.T) {
	ws := setup(t)
	outPath = filepath.Join(ws, "songs.pdf")
	onlyTypes = []string{"song"}

	cmd, buf := newCmd()
	require.NoError(t, runRender(cmd, "pdf"))
	assert.Contains(t, buf.String(), "2 cards")
}

func TestGenerateUnknownTypeExitCode(t *testing.T) {
	ws := setup(t)
	require.NoError(t, os.WriteFile(filepath.Join(ws, "deck.csv"),
		[]byte("type,url,top,center,bottom\npodcast,u,Serial,,Koenig\n"), 0o644))
	outPath = filepath.Join(ws, "x.pdf")

	cmd, _ := newCmd()
	err := runRender(cmd, "pdf")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindInput))
	assert.Equal(t, 3, exitCode(err))
	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestTypes(t *testing.T) {
	setup(t)
	cmd, buf := newCmd()
	require.NoError(t, runTypes(cmd, nil))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "song"))
	assert.Contains(t, lines[0], "2")
	assert.Equal(t, "3 cards", lines[2])
}

func TestManifest(t *testing.T) {
	setup(t)
	cmd, buf := newCmd()
	require.NoError(t, runManifest(cmd, nil))
	out := buf.String()
	assert.Contains(t, out, "page 1 (front of sheet 1)")
	assert.Contains(t, out, "page 2 (back of sheet 1)")
	assert.Contains(t, out, "Thriller")
}

func TestConfigInit(t *testing.T) {
	setup(t)
	path := filepath.Join(t.TempDir(), "cardsheet.yaml")
	cmd, _ := newCmd()
	require.NoError(t, runConfigInit(cmd, []string{path}))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Cards, loaded.Cards)

	assert.Error(t, runConfigInit(cmd, []string{path}))
	force = true
	assert.NoError(t, runConfigInit(cmd, []string{path}))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 1, exitCode(assert.AnError))
	assert.Equal(t, 2, exitCode(errs.Config("op", "f", 1, "", assert.AnError)))
	assert.Equal(t, 4, exitCode(errs.Render("op", 0, assert.AnError)))
}
