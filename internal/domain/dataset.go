package domain

// Row is one record of a sheet, positionally aligned with Dataset.Headers.
type Row []Value

// Dataset is the in-memory table for one sheet. It is read-only once
// built and safe for concurrent readers; every transformation returns a new
// Dataset. Build it with NewDataset or WithRows: a literal Dataset has no
// header index and finds no columns.
type Dataset struct {
	Sheet   string
	Headers []string
	Rows    []Row

	index map[string]int
}

// NewDataset builds a dataset, padding short rows with Missing so every row
// is as wide as the header.
func NewDataset(sheet string, headers []string, rows []Row) *Dataset {
	width := len(headers)
	padded := make([]Row, len(rows))
	for i, r := range rows {
		if len(r) >= width {
			padded[i] = r[:width:width]
			continue
		}
		p := make(Row, width)
		copy(p, r)
		padded[i] = p
	}
	ds := &Dataset{Sheet: sheet, Headers: headers, Rows: padded}
	ds.buildIndex()
	return ds
}

func (d *Dataset) buildIndex() {
	d.index = make(map[string]int, len(d.Headers))
	for i, h := range d.Headers {
		// First occurrence wins for duplicated headers.
		if _, dup := d.index[h]; !dup {
			d.index[h] = i
		}
	}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Index returns the position of a header, or -1.
func (d *Dataset) Index(col Column) int {
	if i, ok := d.index[string(col)]; ok {
		return i
	}
	return -1
}

// Has reports whether the dataset carries the given header.
func (d *Dataset) Has(col Column) bool { return d.Index(col) >= 0 }

// Get returns the cell at row i for col, Missing when the column is absent.
func (d *Dataset) Get(i int, col Column) Value {
	return d.Rows[i].Get(d, col)
}

// Column returns every cell of col, in row order.
func (d *Dataset) Column(col Column) []Value {
	idx := d.Index(col)
	out := make([]Value, len(d.Rows))
	if idx < 0 {
		return out
	}
	for i, r := range d.Rows {
		out[i] = r[idx]
	}
	return out
}

// WithRows returns a dataset sharing this schema with the given rows.
func (d *Dataset) WithRows(rows []Row) *Dataset {
	out := &Dataset{Sheet: d.Sheet, Headers: d.Headers, Rows: rows}
	out.buildIndex()
	return out
}

// Clone returns a deep copy of the rows so callers may mutate cells.
func (d *Dataset) Clone() *Dataset {
	rows := make([]Row, len(d.Rows))
	for i, r := range d.Rows {
		c := make(Row, len(r))
		copy(c, r)
		rows[i] = c
	}
	return d.WithRows(rows)
}

// Equal compares headers and every cell.
func (d *Dataset) Equal(o *Dataset) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.Sheet != o.Sheet || len(d.Headers) != len(o.Headers) || len(d.Rows) != len(o.Rows) {
		return false
	}
	for i := range d.Headers {
		if d.Headers[i] != o.Headers[i] {
			return false
		}
	}
	for i := range d.Rows {
		if len(d.Rows[i]) != len(o.Rows[i]) {
			return false
		}
		for j := range d.Rows[i] {
			if !d.Rows[i][j].Equal(o.Rows[i][j]) {
				return false
			}
		}
	}
	return true
}

// Get returns the cell for col using ds's header index.
func (r Row) Get(ds *Dataset, col Column) Value {
	idx := ds.Index(col)
	if idx < 0 || idx >= len(r) {
		return Missing()
	}
	return r[idx]
}
