package table

import "testing"

func dataCol(t *testing.T, name string, values ...string) *DataColumn {
	t.Helper()
	col, err := NewDataColumn(name, values)
	if err != nil {
		t.Fatalf("NewDataColumn(%q): %v", name, err)
	}
	return col
}

func metaCol(t *testing.T, name, category string, values ...string) *MetadataColumn {
	t.Helper()
	col, err := NewMetadataColumn(name, category, values)
	if err != nil {
		t.Fatalf("NewMetadataColumn(%q): %v", name, err)
	}
	return col
}

func captureCol(t *testing.T, template string, signals ...Signal) *CaptureColumn {
	t.Helper()
	col, err := NewCaptureColumn("capture", signals, template)
	if err != nil {
		t.Fatalf("NewCaptureColumn: %v", err)
	}
	return col
}

// apply runs every column through the container in batch order.
func apply(t *testing.T, c *Container, cols ...Column) {
	t.Helper()
	ordered := Order(cols)
	for _, col := range ordered {
		if err := col.Process(c); err != nil {
			t.Fatalf("Process(%s %q): %v", col.Kind(), col.Name(), err)
		}
	}
	for _, col := range ordered {
		if err := col.PostProcess(c); err != nil {
			t.Fatalf("PostProcess(%s %q): %v", col.Kind(), col.Name(), err)
		}
	}
}

func messages(t *testing.T, c *Container, view View) []string {
	t.Helper()
	f, err := c.Data(view)
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	values, _ := f.Column(MessageColumn)
	return values
}

// conserved counts rows recoverable from groups plus live rows that are not
// group headers.
func conserved(c *Container) int {
	total := 0
	for _, key := range c.Groups() {
		g, _ := c.Group(key)
		total += g.Recoverable()
	}
	f, _ := c.Data(Collapsed)
	for _, stable := range f.Index() {
		if g, err := c.Group(stable); err == nil && !g.Hidden {
			continue
		}
		total++
	}
	return total
}
