package encoder

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is the final fixed-schema numeric row handed to the classifier.
// Column order is significant.
type Record struct {
	columns []string
	values  []float64
}

// Reindex projects computed onto expected: absent columns are zero-filled,
// columns not in expected are dropped, and the result follows expected's
// order exactly.
func Reindex(computed map[string]float64, expected []string) Record {
	r := Record{
		columns: make([]string, len(expected)),
		values:  make([]float64, len(expected)),
	}
	copy(r.columns, expected)
	for i, col := range expected {
		r.values[i] = computed[col]
	}
	return r
}

// Columns returns the column names in order.
func (r Record) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Values returns the row in column order.
func (r Record) Values() []float64 {
	out := make([]float64, len(r.values))
	copy(out, r.values)
	return out
}

// Value returns the value of col and whether the record has that column.
func (r Record) Value(col string) (float64, bool) {
	for i, c := range r.columns {
		if c == col {
			return r.values[i], true
		}
	}
	return 0, false
}

// Len returns the number of columns.
func (r Record) Len() int {
	return len(r.columns)
}

// MarshalJSON encodes the record as a JSON object whose keys keep column
// order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object produced by MarshalJSON, preserving key
// order.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("feature record: expected object, got %v", tok)
	}

	var cols []string
	var vals []float64
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("feature record: expected column name, got %v", tok)
		}
		var v float64
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("feature record: column %q: %w", key, err)
		}
		cols = append(cols, key)
		vals = append(vals, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	r.columns = cols
	r.values = vals
	return nil
}
