package workspace

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceLifecycle(t *testing.T) {
	ws, err := New("test-run")
	require.NoError(t, err)

	path, err := ws.WriteFile("chapters.xml", []byte("<Chapters/>"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<Chapters/>", string(data))

	require.NoError(t, ws.Close())

	_, err = os.Stat(ws.Root())
	assert.True(t, os.IsNotExist(err))
}

func TestCloseRemovesNestedFiles(t *testing.T) {
	ws, err := New("nested")
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(ws.Path("sub"), 0o755))
	_, err = ws.WriteFile("sub/x", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, ws.Close())
	_, err = os.Stat(ws.Root())
	assert.True(t, os.IsNotExist(err))
}
