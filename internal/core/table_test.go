package core

import (
	"reflect"
	"testing"
)

func TestTableMissingColumns(t *testing.T) {
	tbl := NewTable([]string{ColDate, ColAmount}, nil)

	if got := tbl.MissingColumns(ColDate, ColAmount); got != nil {
		t.Errorf("MissingColumns on complete table = %v, want nil", got)
	}

	got := tbl.MissingColumns(ColCategory, ColDate, ColCashback)
	want := []string{ColCategory, ColCashback}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MissingColumns = %v, want %v (requested order preserved)", got, want)
	}
}

func TestTableCell(t *testing.T) {
	tbl := NewTable(
		[]string{ColDate, ColCategory, ColAmount},
		[][]string{
			{"31.12.2021 16:44:00", "Супермаркеты", "-160.89"},
			{"15.12.2021 12:00:00"}, // ragged row
		},
	)

	if got := tbl.Len(); got != 2 {
		t.Fatalf("Len = %d, want 2", got)
	}
	if got := tbl.Cell(0, ColCategory); got != "Супермаркеты" {
		t.Errorf("Cell(0, category) = %q", got)
	}
	if got := tbl.Cell(1, ColAmount); got != "" {
		t.Errorf("Cell on ragged row = %q, want empty", got)
	}
	if got := tbl.Cell(0, ColCashback); got != "" {
		t.Errorf("Cell on absent column = %q, want empty", got)
	}
	if got := tbl.Cell(5, ColDate); got != "" {
		t.Errorf("Cell out of range = %q, want empty", got)
	}
}
