package dictionary

import (
	"os"

	"github.com/goccy/go-json"

	"github.com/gagatek/gagatek/pkg/errors"
)

// SaveReverse writes the id-to-value mappings of every column to filePath as
// a JSON array of string arrays, one per column in column order. Index into
// the inner array is the id.
func (a *Arena) SaveReverse(filePath string) error {
	reverse := make([][]string, len(a.columns))
	for i, col := range a.columns {
		values := col.Values()
		if values == nil {
			values = []string{}
		}
		reverse[i] = values
	}

	data, err := json.Marshal(reverse)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to marshal reverse dictionaries")
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil { //nolint:gosec
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write reverse dictionaries")
	}
	return nil
}

// SaveForward writes the value-to-id mappings of every column to filePath as
// a JSON array of objects, one per column in column order.
func (a *Arena) SaveForward(filePath string) error {
	forward := make([]map[string]int, len(a.columns))
	for i, col := range a.columns {
		m := make(map[string]int, col.Len())
		for id, value := range col.Values() {
			m[value] = id
		}
		forward[i] = m
	}

	data, err := json.Marshal(forward)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to marshal forward dictionaries")
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil { //nolint:gosec
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write forward dictionaries")
	}
	return nil
}

// LoadReverse reads an arena back from a reverse dictionary file written by
// SaveReverse. Forward mappings are rebuilt from the value lists.
func LoadReverse(filePath string) (*Arena, error) {
	data, err := os.ReadFile(filePath) //nolint:gosec // G304: path supplied by caller
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to read reverse dictionaries")
	}

	var reverse [][]string
	if err := json.Unmarshal(data, &reverse); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeParse, "failed to parse reverse dictionaries")
	}

	columns := make([]*Dictionary, len(reverse))
	for i, values := range reverse {
		col := New()
		for _, value := range values {
			col.GetOrInsert(value)
		}
		columns[i] = col
	}
	return NewArena(columns), nil
}
