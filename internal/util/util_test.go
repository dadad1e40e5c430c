package util

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outputs", "output.pdf")
	require.NoError(t, WriteFileAtomic(path, []byte("first")))
	require.NoError(t, WriteFileAtomic(path, []byte("second")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestReadLimited(t *testing.T) {
	b, err := readLimited(strings.NewReader("12345"), 5)
	require.NoError(t, err)
	assert.Equal(t, "12345", string(b))

	_, err = readLimited(strings.NewReader("123456"), 5)
	assert.ErrorContains(t, err, "exceeds")

	_, err = readLimited(strings.NewReader(strings.Repeat("x", 2<<20+1)), 2<<20)
	assert.ErrorContains(t, err, "exceeds 2 MiB limit")
}

func TestGetBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token.png":
			_, _ = w.Write([]byte("png bytes"))
		case "/huge.png":
			_, _ = w.Write(make([]byte, MaxDownloadBytes+1))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	b, err := GetBytes(srv.URL + "/token.png")
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(b))

	_, err = GetBytes(srv.URL + "/missing.png")
	assert.ErrorContains(t, err, "404")

	_, err = GetBytes(srv.URL + "/huge.png")
	assert.ErrorContains(t, err, "exceeds 16 MiB limit")
}
