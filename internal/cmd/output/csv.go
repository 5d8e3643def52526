package output

import (
	"fmt"
	"io"

	"github.com/agentstation/restock/pkg/table"
)

// CSVFormatter outputs comma separated values.
type CSVFormatter struct{}

// Format implements the Formatter interface for CSV output.
func (f *CSVFormatter) Format(w io.Writer, data any) error {
	tableData, ok := ToData(data)
	if !ok {
		converted := convertToTableData(data)
		if converted == nil {
			return fmt.Errorf("cannot render %T as csv", data)
		}
		tableData = *converted
	}
	return table.WriteCSV(w, table.New(tableData.Headers, tableData.Rows...))
}
