package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffdesk/internal/errors"
)

// upload builds a real *multipart.FileHeader the way echo receives one,
// by round-tripping a multipart body through an http request.
func upload(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["image"][0]
}

func TestImageStore_Validate(t *testing.T) {
	store := NewImageStore(t.TempDir())

	t.Run("accepts jpeg and png", func(t *testing.T) {
		assert.NoError(t, store.Validate(upload(t, "a.jpg", "image/jpeg", []byte("jpg"))))
		assert.NoError(t, store.Validate(upload(t, "a.png", "image/png", []byte("png"))))
	})

	t.Run("rejects other media types", func(t *testing.T) {
		err := store.Validate(upload(t, "a.gif", "image/gif", []byte("gif")))
		assert.True(t, errors.IsValidation(err))
		assert.EqualError(t, err, "Only JPG and PNG files are allowed")
	})

	t.Run("rejects oversized uploads", func(t *testing.T) {
		big := upload(t, "a.png", "image/png", []byte("x"))
		big.Size = MaxImageSize + 1

		err := store.Validate(big)
		assert.True(t, errors.IsValidation(err))
		assert.EqualError(t, err, "Image must not exceed 5 MB")
	})
}

func TestImageStore_Save(t *testing.T) {
	t.Run("stores under a timestamp name with the original extension", func(t *testing.T) {
		dir := t.TempDir()
		store := NewImageStore(dir)

		path, err := store.Save(upload(t, "jane.png", "image/png", []byte("png-bytes")))
		require.NoError(t, err)

		assert.Regexp(t, regexp.MustCompile(`^\d+\.png$`), filepath.Base(path))

		data, err := os.ReadFile(filepath.FromSlash(path))
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), data)
	})

	t.Run("creates the directory on first save", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "uploads")
		store := NewImageStore(dir)

		path, err := store.Save(upload(t, "jane.jpg", "image/jpeg", []byte("jpg-bytes")))
		require.NoError(t, err)
		assert.FileExists(t, filepath.FromSlash(path))
	})

	t.Run("rejected upload leaves the directory empty", func(t *testing.T) {
		dir := t.TempDir()
		store := NewImageStore(dir)

		_, err := store.Save(upload(t, "a.gif", "image/gif", []byte("gif")))
		assert.True(t, errors.IsValidation(err))

		entries, readErr := os.ReadDir(dir)
		require.NoError(t, readErr)
		assert.Empty(t, entries)
	})
}

func TestImageStore_Remove(t *testing.T) {
	dir := t.TempDir()
	store := NewImageStore(dir)

	path, err := store.Save(upload(t, "jane.png", "image/png", []byte("png")))
	require.NoError(t, err)

	assert.NoError(t, store.Remove(path))
	assert.NoFileExists(t, filepath.FromSlash(path))

	// already gone and empty paths are fine
	assert.NoError(t, store.Remove(path))
	assert.NoError(t, store.Remove(""))
}
