package output

import (
	"fmt"
	"io"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/restock/pkg/reconcile"
)

// MarkdownFormatter renders a reconciliation report as markdown.
type MarkdownFormatter struct{}

// Format implements the Formatter interface for markdown output.
func (f *MarkdownFormatter) Format(w io.Writer, data any) error {
	if r, ok := data.(*reconcile.Result); ok && r != nil {
		return f.formatResult(w, r)
	}
	if tableData, ok := ToData(data); ok {
		doc := md.NewMarkdown(w)
		doc.Table(md.TableSet{Header: tableData.Headers, Rows: tableData.Rows})
		return doc.Build()
	}
	if tableData := convertToTableData(data); tableData != nil {
		doc := md.NewMarkdown(w)
		doc.Table(md.TableSet{Header: tableData.Headers, Rows: tableData.Rows})
		return doc.Build()
	}
	return fmt.Errorf("cannot render %T as markdown", data)
}

func (f *MarkdownFormatter) formatResult(w io.Writer, r *reconcile.Result) error {
	doc := md.NewMarkdown(w)

	doc.H1("Reconciliation Report").LF()
	doc.PlainTextf("%s %s", md.Bold("Run:"), md.Code(r.Metadata.RunID)).LF()
	doc.PlainTextf("%s %s", md.Bold("Status:"), r.Status).LF()
	doc.PlainText(r.Summary()).LF()

	stats := StatisticsData(r)
	doc.H2("Statistics").LF()
	doc.Table(md.TableSet{Header: stats.Headers, Rows: stats.Rows})

	if len(r.Reports) > 0 {
		doc.H2("Inputs").LF()
		items := make([]string, len(r.Reports))
		for i, report := range r.Reports {
			items[i] = report.String()
		}
		doc.BulletList(items...)
	}

	if oversold := r.Oversold(); len(oversold) > 0 {
		doc.H2("Oversold").LF()
		items := make([]string, len(oversold))
		for i, l := range oversold {
			items[i] = fmt.Sprintf("%s: %d + %d - %d = %d", md.Code(l.Key().String()), l.CurrentStock, l.QuantityReceived, l.QuantitySold, l.NewStock)
		}
		doc.BulletList(items...)
	}

	if r.HasWarnings() {
		doc.H2("Warnings").LF()
		doc.BulletList(r.Warnings...)
	}

	ledger := ResultData(r)
	doc.H2("Updated Ledger").LF()
	doc.Table(md.TableSet{Header: ledger.Headers, Rows: ledger.Rows})

	return doc.Build()
}
