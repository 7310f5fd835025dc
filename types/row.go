package types

// DCSO hostnamer
// Copyright (c) 2026, DCSO GmbH

const (
	// DefaultIPColumn is the default name of the column holding IP addresses.
	DefaultIPColumn = "IP"
	// DefaultHostnameColumn is the default name of the column receiving
	// resolved host names.
	DefaultHostnameColumn = "Hostname"
)

// Columns names the pair of logical columns the hostname resolution works on.
type Columns struct {
	IP       string
	Hostname string
}

// DefaultColumns returns the "IP"/"Hostname" column pair.
func DefaultColumns() Columns {
	return Columns{
		IP:       DefaultIPColumn,
		Hostname: DefaultHostnameColumn,
	}
}

// Header is the ordered list of column names of a table.
type Header []string

// Index returns the position of the named column, or -1 if the header does
// not contain it.
func (h Header) Index(name string) int {
	for i, v := range h {
		if v == name {
			return i
		}
	}
	return -1
}

// Has returns true if the header contains a column with the given name.
func (h Header) Has(name string) bool {
	return h.Index(name) >= 0
}

// Row is a single data row, addressed by column name. RowNumber is 1-based
// and counts data rows only, i.e. it does not include header or frozen rows.
type Row struct {
	RowNumber int
	Cells     map[string]string
}

// MakeRow creates a Row from a positional record aligned to the header.
// Records shorter than the header are padded with empty cells, surplus
// values are dropped. index is the 0-based position of the record among
// the data rows.
func MakeRow(header Header, values []string, index int) *Row {
	r := &Row{
		RowNumber: index + 1,
		Cells:     make(map[string]string, len(header)),
	}
	for i, col := range header {
		if i < len(values) {
			r.Cells[col] = values[i]
		} else {
			r.Cells[col] = ""
		}
	}
	return r
}

// MakeRows converts all given records into Rows, numbering them in order.
func MakeRows(header Header, records [][]string) []*Row {
	rows := make([]*Row, 0, len(records))
	for i, rec := range records {
		rows = append(rows, MakeRow(header, rec, i))
	}
	return rows
}

// Get returns the value of the named cell, or the empty string if there is
// no such column.
func (r *Row) Get(col string) string {
	return r.Cells[col]
}

// Set assigns a value to the named cell.
func (r *Row) Set(col, value string) {
	if r.Cells == nil {
		r.Cells = make(map[string]string)
	}
	r.Cells[col] = value
}

// Values returns the row's cells as a positional slice in header order.
func (r *Row) Values(header Header) []string {
	out := make([]string, len(header))
	for i, col := range header {
		out[i] = r.Cells[col]
	}
	return out
}
