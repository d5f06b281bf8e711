package fileio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestLoadDetectsASCII(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "a.txt", []byte("plain text\n"))
	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, EncodingASCII, f.Encoding)
	assert.Equal(t, LF, f.LineEnding)
	assert.Equal(t, "plain text\n", f.Content)
}

func TestLoadDetectsUTF8(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "u.txt", []byte("héllo wörld\n"))
	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, EncodingUTF8, f.Encoding)
	assert.Equal(t, "héllo wörld\n", f.Content)
}

func TestLoadDetectsLatin1(t *testing.T) {
	t.Parallel()
	// 0xE9 is é in latin-1 and invalid as a standalone UTF-8 byte.
	path := writeTemp(t, "l.txt", []byte{'c', 'a', 'f', 0xE9, '\n'})
	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, EncodingLatin1, f.Encoding)
	assert.Equal(t, "café\n", f.Content)
}

func TestLoadDetectsCP1252(t *testing.T) {
	t.Parallel()
	// 0x93/0x94 are curly quotes in cp1252 and control codes in latin-1.
	path := writeTemp(t, "w.txt", []byte{0x93, 'h', 'i', 0x94})
	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, EncodingCP1252, f.Encoding)
	assert.Equal(t, "“hi”", f.Content)
}

func TestLoadNormalizesCRLF(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "crlf.txt", []byte("one\r\ntwo\r\n"))
	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, CRLF, f.LineEnding)
	assert.Equal(t, "one\ntwo\n", f.Content)
}

func TestLoadNormalizesBareCR(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "cr.txt", []byte("one\rtwo\r"))
	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, CR, f.LineEnding)
	assert.Equal(t, "one\ntwo\n", f.Content)
}

func TestSaveRoundTripsLineEnding(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, Save(path, "one\ntwo\n", SaveOptions{Encoding: EncodingUTF8, LineEnding: CRLF}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\r\ntwo\r\n", string(data))
}

func TestSaveCreatesBackupAndPreservesPerms(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "p.txt")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0600))

	require.NoError(t, Save(path, "new", SaveOptions{CreateBackup: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	bak, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "old", string(bak))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSaveLatin1RoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "l.txt")
	require.NoError(t, Save(path, "café", SaveOptions{Encoding: EncodingLatin1}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{'c', 'a', 'f', 0xE9}, data)

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "café", f.Content)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "x.txt")
	require.NoError(t, Save(path, "data", SaveOptions{}))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "x.txt", entries[0].Name())
}

func TestSwapCreateUpdateRemove(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	target := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0644))

	assert.False(t, HasSwap(target))
	sw, err := NewSwap(target)
	require.NoError(t, err)
	assert.True(t, HasSwap(target))

	require.NoError(t, sw.Update("buffer state"))
	data, err := os.ReadFile(sw.Path())
	require.NoError(t, err)
	assert.Equal(t, "buffer state", string(data))

	require.NoError(t, sw.Remove())
	assert.False(t, HasSwap(target))
}

func TestWatcherSeesExternalWrite(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.txt")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0644))

	w, err := Watch(path)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0644))

	select {
	case changed := <-w.Changed:
		abs, _ := filepath.Abs(path)
		assert.Equal(t, abs, changed)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification received")
	}
}
