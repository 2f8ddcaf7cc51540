package csvfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"finreport/internal/core"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "operations.csv")
	content := "Дата операции,Статус,Категория,Сумма операции,Номер карты,Кэшбэк,Описание\n" +
		"31.12.2021 16:44:00,OK,Супермаркеты,-160.89,*7197,1,Колхоз\n" +
		"15.12.2021 12:00:00,OK,Такси,-100\n" // ragged row
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tbl, err := New(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if tbl.Len() != 2 {
		t.Fatalf("Len = %d, want 2", tbl.Len())
	}
	for _, col := range []string{core.ColDate, core.ColStatus, core.ColCategory, core.ColAmount, core.ColCard, core.ColCashback, core.ColDescription} {
		if !tbl.HasColumn(col) {
			t.Errorf("missing canonical column %q", col)
		}
	}
	if got := tbl.Cell(0, core.ColCategory); got != "Супермаркеты" {
		t.Errorf("Cell(0, category) = %q", got)
	}
	if got := tbl.Cell(1, core.ColCard); got != "" {
		t.Errorf("ragged row card = %q, want empty", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.csv")).Load(context.Background())
	if !errors.Is(err, core.ErrSourceNotFound) {
		t.Errorf("error = %v, want ErrSourceNotFound", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tbl, err := New(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Len() != 0 {
		t.Errorf("Len = %d, want 0", tbl.Len())
	}
}
