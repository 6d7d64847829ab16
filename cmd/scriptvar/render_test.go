// If you are AI: This file contains tests for the embed and serialize subcommands.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kingpin/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRender parses args against a fresh app with stdin/stdout redirected.
func runRender(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	app := kingpin.New("scriptvar", "")
	app.Terminate(nil)

	var out bytes.Buffer
	serialize := addRenderCommand(app, false, "serialize", "")
	embed := addRenderCommand(app, true, "embed", "")
	for _, cmd := range []*renderCommand{serialize, embed} {
		cmd.stdin = strings.NewReader(stdin)
		cmd.stdout = &out
	}

	_, err := app.Parse(args)
	return out.String(), err
}

func TestEmbedFromStdin(t *testing.T) {
	out, err := runRender(t, `{"x":1}`, "embed", "--var", "cfg")
	require.NoError(t, err)
	assert.Equal(t, `<script type="text/javascript">var cfg={"x":"1"}</script>`+"\n", out)
}

func TestSerializeYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: ~\nb: [1, true]\n"), 0644))

	out, err := runRender(t, "", "serialize", path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":{},"b":["1",true]}`+"\n", out)

	out, err = runRender(t, "", "serialize", "--strict-null", path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":null,"b":["1",true]}`+"\n", out)
}

func TestRenderFormatFlag(t *testing.T) {
	out, err := runRender(t, "- x\n", "serialize", "--format", "yaml")
	require.NoError(t, err)
	assert.Equal(t, `["x"]`+"\n", out)
}

func TestRenderErrors(t *testing.T) {
	_, err := runRender(t, `{}`, "embed", "--var", "a-b")
	assert.Error(t, err)

	_, err = runRender(t, `[[1]]`, "serialize", "--max-depth", "1")
	assert.Error(t, err)

	_, err = runRender(t, `{`, "serialize")
	assert.Error(t, err)

	_, err = runRender(t, "", "serialize", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
