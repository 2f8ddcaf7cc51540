package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"finreport/internal/core"
	"finreport/internal/providers"
	"finreport/internal/report"
	"finreport/internal/storage"
	"finreport/internal/table/csvfile"
	"finreport/internal/table/memory"
)

type stubRates struct{ err error }

func (s stubRates) Rates(context.Context, []string) (map[string]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	return map[string]float64{"USD": 0.0137}, nil
}

type stubQuotes struct{}

func (stubQuotes) Prices(context.Context, []string) ([]providers.StockPrice, error) {
	return []providers.StockPrice{{Stock: "AAPL", Price: 150.12}}, nil
}

func testSource() *memory.Store {
	return memory.New(
		[]string{core.ColDate, core.ColStatus, core.ColCategory, core.ColAmount, core.ColCard, core.ColCashback, core.ColDescription},
		[][]string{
			{"15.01.2023 14:30:00", "OK", "Продукты", "-700", "*7197", "70", "Пятёрочка"},
			{"05.02.2023 18:45:00", "OK", "Продукты", "-800", "*7197", "80", "Магнит"},
			{"10.02.2023 09:15:00", "OK", "Транспорт", "-500", "*5091", "", "Метро"},
		},
	)
}

func newTestService(t *testing.T, sinkPath string) *ReportService {
	t.Helper()
	builder := report.NewDashboardBuilder(stubRates{}, stubQuotes{}, []string{"USD"}, []string{"AAPL"}, nil)
	svc := NewReportService(testSource(), builder, storage.NewFileSink(sinkPath), nil, nil, nil)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestReportServiceSpendingByCategory(t *testing.T) {
	sinkPath := filepath.Join(t.TempDir(), "report.json")
	svc := newTestService(t, sinkPath)

	rep, err := svc.SpendingByCategory(context.Background(), "Продукты", "2023-03-01", "")
	if err != nil {
		t.Fatalf("SpendingByCategory: %v", err)
	}
	if rep.Message != "" {
		t.Fatalf("unexpected message %q", rep.Message)
	}

	data, err := os.ReadFile(sinkPath)
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	var totals map[string]json.Number
	if err := json.Unmarshal(data, &totals); err != nil {
		t.Fatalf("artifact: %v", err)
	}
	if totals["2023-01"] != "700" || totals["2023-02"] != "800" {
		t.Errorf("artifact totals = %v", totals)
	}
}

func TestReportServiceSpendingCustomFilename(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(t, filepath.Join(dir, "default.json"))

	name := filepath.Join(dir, "spending_{timestamp}.json")
	if _, err := svc.SpendingByCategory(context.Background(), "Продукты", "2023-03-01", name); err != nil {
		t.Fatalf("SpendingByCategory: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "spending_*.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Errorf("artifacts = %v, want one timestamped file", matches)
	}
}

func TestReportServiceRecordsNoNameWithoutSink(t *testing.T) {
	archive, err := storage.NewReportArchive(filepath.Join(t.TempDir(), "reports.db"))
	if err != nil {
		t.Fatalf("NewReportArchive: %v", err)
	}

	builder := report.NewDashboardBuilder(stubRates{}, stubQuotes{}, nil, nil, nil)
	svc := NewReportService(testSource(), builder, nil, archive, nil, nil)
	defer svc.Close()

	ctx := context.Background()
	if _, err := svc.SpendingByCategory(ctx, "Продукты", "2023-03-01", "spending_{timestamp}.json"); err != nil {
		t.Fatalf("SpendingByCategory: %v", err)
	}

	got, err := archive.Recent(ctx, report.KindSpending, 1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("archived reports = %d, want 1", len(got))
	}
	// No artifact was written, so no name and never the raw placeholder.
	if got[0].Name != "" {
		t.Errorf("archived name = %q, want empty", got[0].Name)
	}
}

func TestReportServiceCashbackByCategory(t *testing.T) {
	svc := newTestService(t, filepath.Join(t.TempDir(), "report.json"))

	rep, err := svc.CashbackByCategory(context.Background(), 2023, 2)
	if err != nil {
		t.Fatalf("CashbackByCategory: %v", err)
	}
	if len(rep.Entries) != 1 || rep.Entries[0].Category != "Продукты" || rep.Entries[0].Amount.String() != "80" {
		t.Errorf("entries = %v", rep.Entries)
	}
}

func TestReportServiceDashboard(t *testing.T) {
	svc := newTestService(t, filepath.Join(t.TempDir(), "report.json"))

	d, err := svc.Dashboard(context.Background(), "2023-03-01 19:00:00")
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if d.Greeting != "Добрый вечер" {
		t.Errorf("greeting = %q", d.Greeting)
	}
	if len(d.Cards) != 2 {
		t.Errorf("cards = %v, want both masked cards", d.Cards)
	}
	if len(d.TopTransactions) != 3 {
		t.Errorf("top = %v, want all three expenses", d.TopTransactions)
	}
	if len(d.CurrencyRates) != 1 || d.CurrencyRates[0].Currency != "USD" {
		t.Errorf("rates = %v", d.CurrencyRates)
	}
}

func TestReportServiceDashboardInvalidTimestamp(t *testing.T) {
	svc := newTestService(t, filepath.Join(t.TempDir(), "report.json"))

	if _, err := svc.Dashboard(context.Background(), "tomorrow"); !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestReportServiceMissingSource(t *testing.T) {
	builder := report.NewDashboardBuilder(stubRates{}, stubQuotes{}, nil, nil, nil)
	svc := NewReportService(
		csvfile.New(filepath.Join(t.TempDir(), "nope.csv")),
		builder,
		storage.NewFileSink(filepath.Join(t.TempDir(), "report.json")),
		nil, nil, nil,
	)
	defer svc.Close()

	if _, err := svc.SpendingByCategory(context.Background(), "Продукты", "", ""); !errors.Is(err, core.ErrSourceNotFound) {
		t.Errorf("spending error = %v, want ErrSourceNotFound", err)
	}
	if _, err := svc.Dashboard(context.Background(), "2023-03-01 12:00:00"); !errors.Is(err, core.ErrSourceNotFound) {
		t.Errorf("dashboard error = %v, want ErrSourceNotFound", err)
	}
}
