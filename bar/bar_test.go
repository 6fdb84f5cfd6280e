package bar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/barcodec/barcodec/internal/bcerr"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string][]byte) string {
	t.Helper()
	root := t.TempDir()
	src := filepath.Join(root, "mymod")
	require.NoError(t, os.MkdirAll(src, 0o755))
	for name, data := range files {
		path := filepath.Join(src, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}
	return src
}

func TestCreateThenOpenRoundTripDE(t *testing.T) {
	src := writeTree(t, map[string][]byte{
		"a.txt":        []byte("hello"),
		"sub/b.txt":    []byte("world, a bit longer"),
		"sub/c.bin":    {0, 1, 2, 3, 4},
	})
	outRoot := t.TempDir()

	created, err := Create(src, VersionDE, OutputLayout{Root: outRoot})
	require.NoError(t, err)
	require.EqualValues(t, 3, created.FileCount)

	barPath := filepath.Join(outRoot, "created", "mymod.bar")
	opened, err := Open(barPath)
	require.NoError(t, err)
	require.Equal(t, VersionDE, opened.Version)
	require.Len(t, opened.Entries, 3)

	names := map[string]bool{}
	for _, e := range opened.Entries {
		names[e.Name] = true
		payload, err := opened.Payload(e)
		require.NoError(t, err)
		require.EqualValues(t, len(payload), e.Size2)
	}
	require.True(t, names[`a.txt`])
	require.True(t, names[`sub\b.txt`])
	require.True(t, names[`sub\c.bin`])
}

func TestCreateThenOpenRoundTripLegacy(t *testing.T) {
	src := writeTree(t, map[string][]byte{"only.txt": []byte("x")})
	outRoot := t.TempDir()

	created, err := Create(src, VersionLegacy, OutputLayout{Root: outRoot})
	require.NoError(t, err)

	opened, err := Open(created.path)
	require.NoError(t, err)
	require.Equal(t, VersionLegacy, opened.Version)
	require.Equal(t, EncodingNone, opened.Entries[0].EncodingClass)
}

func TestOpenRejectsBadSignature(t *testing.T) {
	f := filepath.Join(t.TempDir(), "bad.bar")
	require.NoError(t, os.WriteFile(f, make([]byte, 32), 0o644))
	_, err := Open(f)
	require.ErrorIs(t, err, bcerr.ErrNotValidBarSignature)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.bar"))
	require.ErrorIs(t, err, bcerr.ErrBarNotFound)
}

func TestExtractWritesManifestAndRawEntries(t *testing.T) {
	src := writeTree(t, map[string][]byte{"a.txt": []byte("hello")})
	outRoot := t.TempDir()
	created, err := Create(src, VersionDE, OutputLayout{Root: outRoot})
	require.NoError(t, err)

	opened, err := Open(created.path)
	require.NoError(t, err)

	extractRoot := t.TempDir()
	require.NoError(t, opened.Extract(OutputLayout{Root: extractRoot}, nil))

	manifest := filepath.Join(extractRoot, "extracted", manifestName)
	_, err = os.Stat(manifest)
	require.NoError(t, err)

	rawPath := filepath.Join(extractRoot, "extracted", "mymod", "a.txt")
	data, err := os.ReadFile(rawPath)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), data)
}
