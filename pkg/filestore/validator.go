package filestore

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Magic byte prefixes for the allowed resume formats.
var magicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                                 // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}},         // OLE compound document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                                 // ZIP (PK..)
}

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// ValidResumeType reports whether filename carries an allowed resume
// extension (pdf, doc, docx; case-insensitive) and, when file content is
// supplied, whether the content matches the extension's signature.
func ValidResumeType(filename string, data []byte) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return false
	}
	if len(data) == 0 {
		return true
	}
	for _, prefix := range magicBytes[ext] {
		if bytes.HasPrefix(data, prefix) {
			return true
		}
	}
	return false
}
