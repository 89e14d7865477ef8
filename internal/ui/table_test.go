package ui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTableAlignsColumns(t *testing.T) {
	tbl := NewTable(3)
	tbl.AddRow("1", "Pilot", "published")
	tbl.AddRow("12", "Rain", "sketched")

	want := "1   Pilot  published\n" +
		"12  Rain   sketched\n"
	if diff := cmp.Diff(want, tbl.String()); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}
	if tbl.Len() != 2 {
		t.Fatalf("Len = %d", tbl.Len())
	}
}

func TestEmptyTable(t *testing.T) {
	if got := NewTable(2).String(); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
