// Package extract converts an unstructured invoice document into a table
// through an LLM document-extraction backend. The backend is an external
// collaborator; this package owns its I/O contract: upload, generate,
// always delete, strictly parse.
package extract

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/restock/pkg/constants"
	"github.com/agentstation/restock/pkg/errors"
)

// Document is an invoice file held in memory.
type Document struct {
	Name     string `json:"name" yaml:"name"`
	MIMEType string `json:"mime_type" yaml:"mime_type"`
	Data     []byte `json:"-" yaml:"-"`
}

// BaseName returns the document name without directory or extension.
func (d Document) BaseName() string {
	base := filepath.Base(d.Name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

var mimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".heic": "image/heic",
	".txt":  "text/plain",
	".csv":  "text/csv",
}

// LoadDocument reads an invoice document from disk.
func LoadDocument(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.WrapIO("stat", path, err)
	}
	if info.Size() > constants.MaxDocumentSize {
		return nil, errors.NewValidationError("invoice", path, "document exceeds the 20 MB extraction limit")
	}

	data, err := os.ReadFile(path) //nolint:gosec // operator supplied input path
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return NewDocument(filepath.Base(path), data), nil
}

// NewDocument wraps bytes as a document, detecting the MIME type from the
// name and falling back to content sniffing.
func NewDocument(name string, data []byte) *Document {
	mime, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]
	if !ok {
		mime = http.DetectContentType(data)
	}
	return &Document{Name: name, MIMEType: mime, Data: data}
}

// IsPDF reports whether the document is a PDF.
func (d Document) IsPDF() bool {
	return d.MIMEType == "application/pdf"
}
