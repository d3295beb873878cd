package upload

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

func TestDiskStoreSaveResolveRemove(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStore(dir, "http://localhost:5000/", 1024)
	require.NoError(t, err)

	ref, err := s.Save(fileHeader(t, "photo.PNG", "image/png", []byte("png-bytes")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "/uploads/"))
	assert.True(t, strings.HasSuffix(ref, ".png"))
	assert.True(t, s.Owns(ref))

	stored, err := os.ReadFile(filepath.Join(dir, filepath.Base(ref)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(stored))

	assert.Equal(t, "http://localhost:5000"+ref, s.Resolve(ref))
	assert.Equal(t, "https://cdn.example.com/a.jpg", s.Resolve("https://cdn.example.com/a.jpg"))
	assert.Equal(t, "", s.Resolve(""))

	require.NoError(t, s.Remove(ref))
	_, err = os.Stat(filepath.Join(dir, filepath.Base(ref)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Remove(ref), "removing twice is fine")
	assert.NoError(t, s.Remove("https://cdn.example.com/a.jpg"), "foreign references are ignored")
	assert.NoError(t, s.Remove(""))
}

func TestDiskStoreRemoveStaysInsideDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "uploads")
	s, err := NewDiskStore(dir, "", 1024)
	require.NoError(t, err)

	outside := filepath.Join(root, "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o600))

	require.NoError(t, s.Remove("/uploads/../secret.txt"))
	_, err = os.Stat(outside)
	assert.NoError(t, err, "file outside the uploads directory survives")
}

func TestDiskStoreOwns(t *testing.T) {
	s, err := NewDiskStore(t.TempDir(), "", 1024)
	require.NoError(t, err)

	assert.True(t, s.Owns("/uploads/1728129600000-ab12cd34.png"))
	assert.False(t, s.Owns("/uploads/"), "bare directory")
	assert.False(t, s.Owns("/uploads/../secret.txt"), "nested path")
	assert.False(t, s.Owns("/uploadsx/a.png"))
	assert.False(t, s.Owns("https://cdn.example.com/uploads/a.png"))
	assert.False(t, s.Owns(""))
}

func TestDiskStoreRejectsInvalidUploads(t *testing.T) {
	s, err := NewDiskStore(t.TempDir(), "", 8)
	require.NoError(t, err)

	_, err = s.Save(fileHeader(t, "notes.txt", "text/plain", []byte("hi")))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = s.Save(fileHeader(t, "fake.png", "application/pdf", []byte("hi")))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = s.Save(fileHeader(t, "big.jpg", "image/jpeg", bytes.Repeat([]byte("a"), 64)))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestInlineStore(t *testing.T) {
	s := NewInlineStore(1024)

	ref, err := s.Save(fileHeader(t, "banner.webp", "image/webp", []byte("webp")))
	require.NoError(t, err)
	assert.Equal(t, "data:image/webp;base64,"+base64.StdEncoding.EncodeToString([]byte("webp")), ref)
	assert.True(t, s.Owns(ref))
	assert.Equal(t, ref, s.Resolve(ref))
	assert.NoError(t, s.Remove(ref))

	_, err = s.Save(fileHeader(t, "doc.gif", "text/html", []byte("x")))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
