package survey

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
)

// LoadFilterIDs reads a tabular filter file (CSV or XLSX by extension) and
// collects every cell that parses as an integer into a taxon-id set.
// Non-integer cells are skipped. A missing file means "no filtering": the
// returned set is empty and the condition is logged, not fatal.
func LoadFilterIDs(path string) (map[int]bool, error) {
	ids := make(map[int]bool)
	if path == "" {
		return ids, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		zap.L().Warn("filter file not found, proceeding without filtering", zap.String("path", path))
		return ids, nil
	}

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSXRows(path)
	default:
		rows, err = readCSVRows(path)
	}
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		for _, cell := range row {
			if id, convErr := strconv.Atoi(strings.TrimSpace(cell)); convErr == nil {
				ids[id] = true
			}
		}
	}

	zap.L().Info("loaded taxon filter", zap.String("path", path), zap.Int("ids", len(ids)))
	return ids, nil
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "filter: open file")
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // allow variable fields
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "filter: read csv")
	}
	return rows, nil
}

func readXLSXRows(path string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "filter: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("filter: %s has no sheets", path)
	}

	var rows [][]string
	for _, row := range f.Sheets[0].Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
