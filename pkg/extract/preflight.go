package extract

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/agentstation/restock/pkg/constants"
	"github.com/agentstation/restock/pkg/errors"
)

// Preflight rejects documents that cannot produce a table before any
// network call is made: empty or oversized files and unreadable PDFs.
func Preflight(doc Document) error {
	if len(doc.Data) == 0 {
		return errors.NewExtractionError(doc.Name, "document is empty", nil)
	}
	if len(doc.Data) > constants.MaxDocumentSize {
		return errors.NewExtractionError(doc.Name, "document exceeds the 20 MB extraction limit", nil)
	}
	if !doc.IsPDF() {
		return nil
	}

	pages, err := pdfPages(doc.Data)
	if err != nil {
		return errors.NewExtractionError(doc.Name, "unreadable PDF", err)
	}
	if pages == 0 {
		return errors.NewExtractionError(doc.Name, "PDF has no pages", nil)
	}
	return nil
}

func pdfPages(data []byte) (pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, err
	}
	return reader.NumPage(), nil
}
