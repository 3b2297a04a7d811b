package files

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_SaveAndRemove(t *testing.T) {
	s, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	n, err := s.Save(context.Background(), "abc.png", strings.NewReader("data"))
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)

	b, err := os.ReadFile(filepath.Join(s.Dir(), "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(b))

	require.NoError(t, s.Remove(context.Background(), "abc.png"))
	require.NoError(t, s.Remove(context.Background(), "abc.png"))
	_, err = os.Stat(filepath.Join(s.Dir(), "abc.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStore_RejectsPaths(t *testing.T) {
	s, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "../x.png", "a/b.png", ".hidden"} {
		_, err := s.Save(context.Background(), name, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestDiskStore_FailedSaveLeavesNothing(t *testing.T) {
	s, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "broken.png", failingReader{})
	require.Error(t, err)

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDiskStore_Handler(t *testing.T) {
	s, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)
	_, err = s.Save(context.Background(), "cat.png", strings.NewReader("png"))
	require.NoError(t, err)

	notFound := func(w http.ResponseWriter, r *http.Request) { http.Error(w, "missing", http.StatusNotFound) }
	h := s.Handler(func(r *http.Request) string { return r.URL.Query().Get("f") }, notFound)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/?f=cat.png", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png", rec.Body.String())

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/?f=dog.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
