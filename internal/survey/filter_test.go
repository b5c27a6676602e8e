package survey

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func TestLoadFilterIDsSkipsNonInteger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filter.csv")
	require.NoError(t, os.WriteFile(path, []byte("12a,45\n,45\n"), 0644))

	ids, err := LoadFilterIDs(path)
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{45: true}, ids)
}

func TestLoadFilterIDsMultipleColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filter.csv")
	require.NoError(t, os.WriteFile(path, []byte("taxon_id,name\n117775,Pisaster ochraceus\n47115,Mollusca\n"), 0644))

	ids, err := LoadFilterIDs(path)
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{117775: true, 47115: true}, ids)
}

func TestLoadFilterIDsMissingFile(t *testing.T) {
	ids, err := LoadFilterIDs(filepath.Join(t.TempDir(), "nope.csv"))
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestLoadFilterIDsEmptyPath(t *testing.T) {
	ids, err := LoadFilterIDs("")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestLoadFilterIDsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filter.xlsx")

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("ids")
	require.NoError(t, err)
	for _, cells := range [][]string{{"taxon_id", "note"}, {"117775", "sea star"}, {"n/a", ""}} {
		row := sheet.AddRow()
		for _, v := range cells {
			row.AddCell().SetString(v)
		}
	}
	require.NoError(t, f.Save(path))

	ids, err := LoadFilterIDs(path)
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{117775: true}, ids)
}
