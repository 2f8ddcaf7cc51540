// Package backend selects and constructs the configured row source.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"finreport/internal/config"
	"finreport/internal/table"
	"finreport/internal/table/csvfile"
	"finreport/internal/table/google"
	"finreport/internal/table/memory"
)

// SourceType names a row source backend.
type SourceType string

const (
	CSVSource    SourceType = "csv"
	SheetsSource SourceType = "sheets"
	MemorySource SourceType = "memory"
)

func (s SourceType) IsValid() bool {
	switch s {
	case CSVSource, SheetsSource, MemorySource:
		return true
	default:
		return false
	}
}

// Config holds what each source needs.
type Config struct {
	Type SourceType

	// CSV
	Path string

	// Google Sheets
	SpreadsheetID string
	SheetName     string
}

// FromAppConfig converts the application config to a backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}
	t := SourceType(appConfig.DataBackend)
	if !t.IsValid() {
		return Config{}, fmt.Errorf("invalid data backend %q", appConfig.DataBackend)
	}
	return Config{
		Type:          t,
		Path:          appConfig.PathFile,
		SpreadsheetID: appConfig.GoogleSpreadsheetID,
		SheetName:     appConfig.GoogleSheetName,
	}, nil
}

// New creates the configured row source.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (table.RowSource, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Type {
	case CSVSource:
		logger.Info("using csv row source", "path", cfg.Path)
		return csvfile.New(cfg.Path), nil
	case SheetsSource:
		src, err := google.New(ctx, cfg.SpreadsheetID, cfg.SheetName)
		if err != nil {
			return nil, fmt.Errorf("initialize sheets source: %w", err)
		}
		logger.Info("using google sheets row source", "sheet", cfg.SheetName)
		return src, nil
	case MemorySource:
		logger.Info("using empty memory row source")
		return memory.New(nil, nil), nil
	default:
		return nil, fmt.Errorf("unsupported source type: %s", cfg.Type)
	}
}
