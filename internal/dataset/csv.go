package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// readCSV parses a CSV source into a Dataset. The first record is the
// header; short rows leave trailing cells nil.
func readCSV(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV rows: %w", err)
	}

	ds := &Dataset{Columns: columns}
	for _, record := range records {
		row := make(Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = coerceCell(record[i])
			} else {
				row[col] = nil
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}
