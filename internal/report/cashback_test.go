package report

import (
	"encoding/json"
	"errors"
	"testing"

	"finreport/internal/core"
)

func TestCashbackByCategory(t *testing.T) {
	tbl := opsTable([][]string{
		{"31.12.2021 16:44:00", "OK", "Супермаркеты", "-1000", "*7197", "100", "Лента"},
		{"15.12.2021 12:00:00", " ok ", "АЗС", "-500", "*7197", "50", "Лукойл"},
		{"10.12.2021 08:30:00", "FAILED", "Супермаркеты", "-200", "*7197", "20", "declined"},
		{"05.11.2021 10:00:00", "OK", "Супермаркеты", "-300", "*7197", "30", "other month"},
		{"20.12.2021 13:00:00", "OK", "Переводы", "-1000", "*7197", "", "no cashback"},
		{"21.12.2021 13:00:00", "OK", "Переводы", "-1000", "*7197", "0", "zero cashback"},
	})

	rep, err := CashbackByCategory(tbl, 2021, 12)
	if err != nil {
		t.Fatalf("CashbackByCategory: %v", err)
	}

	got, err := json.Marshal(rep)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"Супермаркеты":100,"АЗС":50}`
	if string(got) != want {
		t.Errorf("report = %s, want %s", got, want)
	}
	if len(rep.Diagnostics) != 0 {
		t.Errorf("diagnostics = %v, want none", rep.Diagnostics)
	}
}

func TestCashbackByCategoryEmptyMonth(t *testing.T) {
	tbl := opsTable([][]string{
		{"31.12.2021 16:44:00", "OK", "Супермаркеты", "-1000", "*7197", "100", ""},
	})

	rep, err := CashbackByCategory(tbl, 2022, 1)
	if err != nil {
		t.Fatalf("CashbackByCategory: %v", err)
	}
	if len(rep.Entries) != 0 {
		t.Fatalf("entries = %v, want none", rep.Entries)
	}
	b, _ := json.Marshal(rep)
	if string(b) != "{}" {
		t.Errorf("marshal = %s, want {}", b)
	}
}

func TestCashbackByCategoryOrdering(t *testing.T) {
	tbl := opsTable([][]string{
		{"01.12.2021", "OK", "Gas", "-100", "*1", "50", ""},
		{"02.12.2021", "OK", "Food", "-100", "*1", "50", ""},
		{"03.12.2021", "OK", "Taxi", "-100", "*1", "120", ""},
	})

	rep, err := CashbackByCategory(tbl, 2021, 12)
	if err != nil {
		t.Fatalf("CashbackByCategory: %v", err)
	}

	b, _ := json.Marshal(rep)
	// Largest first; equal totals in category order.
	want := `{"Taxi":120,"Food":50,"Gas":50}`
	if string(b) != want {
		t.Errorf("report = %s, want %s", b, want)
	}
}

func TestCashbackByCategoryDiagnostics(t *testing.T) {
	tbl := opsTable([][]string{
		{"bad date", "OK", "Супермаркеты", "-100", "*1", "10", ""},
		{"01.12.2021", "OK", "Супермаркеты", "-100", "*1", "ten", ""},
		{"02.12.2021", "OK", "Супермаркеты", "-100", "*1", "10", ""},
	})

	rep, err := CashbackByCategory(tbl, 2021, 12)
	if err != nil {
		t.Fatalf("CashbackByCategory: %v", err)
	}
	if len(rep.Diagnostics) != 2 {
		t.Fatalf("diagnostics = %v, want 2 entries", rep.Diagnostics)
	}
	if rep.Diagnostics[0].Column != core.ColDate || rep.Diagnostics[1].Column != core.ColCashback {
		t.Errorf("diagnostics = %v, want one date and one cashback drop", rep.Diagnostics)
	}
	if len(rep.Entries) != 1 || rep.Entries[0].Amount.String() != "10" {
		t.Errorf("entries = %v, want the one clean row", rep.Entries)
	}
}

func TestCashbackByCategoryMissingColumns(t *testing.T) {
	tbl := core.NewTable([]string{core.ColDate, core.ColCategory}, nil)
	_, err := CashbackByCategory(tbl, 2021, 12)

	var schemaErr *core.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("error = %v, want SchemaError", err)
	}
	want := []string{core.ColStatus, core.ColCashback}
	if len(schemaErr.Missing) != 2 || schemaErr.Missing[0] != want[0] || schemaErr.Missing[1] != want[1] {
		t.Errorf("missing = %v, want %v", schemaErr.Missing, want)
	}
}
