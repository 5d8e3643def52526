package extract_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/restock/pkg/errors"
	"github.com/agentstation/restock/pkg/extract"
)

// buildPDF writes a minimal PDF with the given number of blank pages.
func buildPDF(pages int) []byte {
	kids := ""
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"",
	}
	for i := range pages {
		kids += fmt.Sprintf("%d 0 R ", i+3)
		objs = append(objs, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	}
	objs[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, pages)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

func TestPreflight(t *testing.T) {
	tests := []struct {
		name    string
		doc     extract.Document
		wantErr bool
	}{
		{name: "pdf with pages", doc: extract.Document{Name: "a.pdf", MIMEType: "application/pdf", Data: buildPDF(2)}},
		{name: "image", doc: extract.Document{Name: "a.png", MIMEType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}},
		{name: "empty", doc: extract.Document{Name: "a.pdf", MIMEType: "application/pdf"}, wantErr: true},
		{name: "pdf without pages", doc: extract.Document{Name: "a.pdf", MIMEType: "application/pdf", Data: buildPDF(0)}, wantErr: true},
		{name: "garbage pdf", doc: extract.Document{Name: "a.pdf", MIMEType: "application/pdf", Data: []byte("not a pdf at all")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := extract.Preflight(tt.doc)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.IsExtractionFailed(err), "got %v", err)
		})
	}
}
