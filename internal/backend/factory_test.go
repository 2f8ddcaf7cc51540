package backend

import (
	"context"
	"testing"

	"finreport/internal/config"
	"finreport/internal/table/csvfile"
	"finreport/internal/table/memory"
)

func TestFromAppConfig(t *testing.T) {
	cfg, err := FromAppConfig(&config.Config{
		DataBackend: "csv",
		PathFile:    "data/operations.csv",
	})
	if err != nil {
		t.Fatalf("FromAppConfig: %v", err)
	}
	if cfg.Type != CSVSource || cfg.Path != "data/operations.csv" {
		t.Errorf("cfg = %+v", cfg)
	}

	if _, err := FromAppConfig(&config.Config{DataBackend: "excel"}); err == nil {
		t.Error("want error for unknown backend")
	}
	if _, err := FromAppConfig(nil); err == nil {
		t.Error("want error for nil config")
	}
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	src, err := New(ctx, Config{Type: CSVSource, Path: "ops.csv"}, nil)
	if err != nil {
		t.Fatalf("New csv: %v", err)
	}
	if _, ok := src.(*csvfile.Source); !ok {
		t.Errorf("source = %T, want *csvfile.Source", src)
	}

	src, err = New(ctx, Config{Type: MemorySource}, nil)
	if err != nil {
		t.Fatalf("New memory: %v", err)
	}
	if _, ok := src.(*memory.Store); !ok {
		t.Errorf("source = %T, want *memory.Store", src)
	}

	if _, err := New(ctx, Config{Type: "excel"}, nil); err == nil {
		t.Error("want error for unsupported type")
	}
}

func TestSourceTypeIsValid(t *testing.T) {
	for _, s := range []SourceType{CSVSource, SheetsSource, MemorySource} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if SourceType("excel").IsValid() {
		t.Error("excel should be invalid")
	}
}
