package storage

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// =============================================================================
// Content Type Detection
// =============================================================================

// contractTypes maps the advisory upload extensions to their MIME types.
// mime.TypeByExtension is platform dependent for .docx, so these are fixed.
var contractTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain; charset=utf-8",
}

// DetectContentType determines the MIME type of a file.
//
// Detection priority:
// 1. If providedType is non-empty and specific, use it directly
// 2. Known contract extensions (.pdf, .docx, .txt)
// 3. mime.TypeByExtension
// 4. Sniff content from the first 512 bytes of data (if available)
// 5. Fall back to "application/octet-stream"
//
// Browsers commonly send application/octet-stream for .docx, so that value
// does not count as specific.
func DetectContentType(providedType, filename string, data io.Reader) string {
	if providedType != "" && baseType(providedType) != "application/octet-stream" {
		return providedType
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if contentType, ok := contractTypes[ext]; ok {
		return contentType
	}
	if contentType := mime.TypeByExtension(ext); contentType != "" {
		return contentType
	}

	if data != nil {
		buffer := make([]byte, 512)
		n, err := io.ReadFull(data, buffer)
		if err == nil || err == io.EOF || err == io.ErrUnexpectedEOF {
			return http.DetectContentType(buffer[:n])
		}
	}

	return "application/octet-stream"
}

// IsContractDocument reports whether the content type is one of the formats
// the analysis backend understands. Used for logging only; selection is not
// rejected on type.
func IsContractDocument(contentType string) bool {
	switch baseType(contentType) {
	case "application/pdf",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"text/plain":
		return true
	}
	return false
}

func baseType(contentType string) string {
	return strings.TrimSpace(strings.ToLower(strings.Split(contentType, ";")[0]))
}
