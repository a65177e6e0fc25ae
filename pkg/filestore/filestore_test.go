package filestore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave(t *testing.T) {
	t.Run("Should write the file under the store directory", func(t *testing.T) {
		dir := t.TempDir()
		store := New(dir)

		path, err := store.Save("CAND0001", "resume.pdf", []byte("%PDF-1.4 content"))
		require.NoError(t, err)

		assert.Equal(t, dir, filepath.Dir(path))
		assert.True(t, strings.HasPrefix(filepath.Base(path), "CAND0001-"))
		assert.True(t, strings.HasSuffix(path, "-resume.pdf"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.4 content"), data)
	})

	t.Run("Should create the directory when missing", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "uploads", "resumes")
		store := New(dir)

		path, err := store.Save("CAND0002", "resume.docx", []byte("PK\x03\x04"))
		require.NoError(t, err)
		assert.FileExists(t, path)
	})

	t.Run("Resubmissions never overwrite an earlier upload", func(t *testing.T) {
		store := New(t.TempDir())

		first, err := store.Save("CAND0003", "resume.pdf", []byte("%PDF-1.4 v1"))
		require.NoError(t, err)
		second, err := store.Save("CAND0003", "resume.pdf", []byte("%PDF-1.4 v2"))
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		data, err := os.ReadFile(first)
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.4 v1"), data)
	})

	t.Run("Should strip directory traversal from the filename", func(t *testing.T) {
		dir := t.TempDir()
		store := New(dir)

		path, err := store.Save("CAND0004", "../../etc/resume.pdf", []byte("%PDF-1.4"))
		require.NoError(t, err)
		assert.Equal(t, dir, filepath.Dir(path))
		assert.True(t, strings.HasSuffix(path, "-resume.pdf"))
	})
}

func TestValidResumeType(t *testing.T) {
	pdf := []byte("%PDF-1.4 body")
	doc := []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0x00}
	docx := []byte{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00}

	tests := []struct {
		name     string
		filename string
		data     []byte
		want     bool
	}{
		{"pdf with pdf signature", "resume.pdf", pdf, true},
		{"uppercase extension", "RESUME.PDF", pdf, true},
		{"doc with OLE signature", "resume.doc", doc, true},
		{"docx with zip signature", "resume.docx", docx, true},
		{"allowed extension, no content check", "resume.pdf", nil, true},
		{"disallowed extension", "resume.txt", []byte("plain text"), false},
		{"no extension", "resume", pdf, false},
		{"executable disguised as pdf", "resume.pdf", []byte{0x4D, 0x5A, 0x90, 0x00}, false},
		{"pdf content behind doc extension", "resume.doc", pdf, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidResumeType(tt.filename, tt.data))
		})
	}
}
