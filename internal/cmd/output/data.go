package output

import (
	"fmt"
	"strconv"

	"github.com/agentstation/restock/pkg/inventory"
	"github.com/agentstation/restock/pkg/reconcile"
	"github.com/agentstation/restock/pkg/table"
)

// Align represents column alignment for table output.
type Align int

// Column alignments
const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Data represents data formatted for table output.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align
}

// ToData converts the tabular types commands print into Data.
func ToData(data any) (Data, bool) {
	switch v := data.(type) {
	case Data:
		return v, true
	case *Data:
		return *v, v != nil
	case *reconcile.Result:
		return ResultData(v), v != nil
	case *table.Table:
		if v == nil {
			return Data{}, false
		}
		return Data{Headers: v.Columns, Rows: v.Rows}, true
	default:
		return Data{}, false
	}
}

// ResultData renders the updated ledger with its audit columns right aligned.
func ResultData(r *reconcile.Result) Data {
	if r == nil {
		return Data{}
	}
	t := r.Table()
	align := make([]Align, len(t.Columns))
	for i := len(r.Columns); i < len(align); i++ {
		align[i] = AlignRight
		if name := t.Columns[i]; name == inventory.ColumnSoldName || name == inventory.ColumnReceivedName {
			align[i] = AlignLeft
		}
	}
	return Data{Headers: t.Columns, Rows: t.Rows, ColumnAlignment: align}
}

// StatisticsData renders run statistics as a key-value table.
func StatisticsData(r *reconcile.Result) Data {
	s := r.Metadata.Stats
	rows := [][]string{
		{"Status", string(r.Status)},
		{"Ledger rows", strconv.Itoa(s.Lines)},
		{"Matched sales keys", strconv.Itoa(s.MatchedSales)},
		{"Matched invoice keys", strconv.Itoa(s.MatchedInvoice)},
		{"Units sold", strconv.FormatInt(s.UnitsSold, 10)},
		{"Units received", strconv.FormatInt(s.UnitsReceived, 10)},
		{"Unmatched keys", strconv.Itoa(s.Unmatched)},
		{"Duplicate ledger keys", strconv.Itoa(s.Duplicates)},
		{"Oversold rows", strconv.Itoa(s.Oversold)},
		{"Duration", fmt.Sprint(r.Metadata.Duration)},
	}
	return Data{Headers: []string{"Metric", "Value"}, Rows: rows, ColumnAlignment: []Align{AlignLeft, AlignRight}}
}
