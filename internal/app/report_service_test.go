package app

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/example/obras/internal/ports/primary"
	"github.com/example/obras/internal/ports/secondary"
)

func TestIndicators(t *testing.T) {
	store := newTestStore()
	store.reports.count = 5
	store.reports.total = decimal.RequireFromString("12345.67")
	store.reports.typeAggs = []secondary.TypeAggregate{
		{WorkType: "Plazas", Count: 3, TotalAmount: decimal.RequireFromString("10000")},
		{WorkType: "Vial", Count: 2, TotalAmount: decimal.RequireFromString("2345.67")},
	}
	store.reports.stageCounts = []secondary.StageCount{
		{Stage: "En Ejecucion", Count: 4},
		{Stage: "Finalizada", Count: 1},
	}
	store.reports.neighborhoods = []secondary.NeighborhoodInfo{
		{Name: "boedo", District: "5"},
	}
	store.reports.finished = []secondary.FinishedWork{
		{ID: 9, Name: "Obra Larga", TermMonths: 36},
	}

	svc := NewReportService(store)
	out, err := svc.Indicators(context.Background(), primary.IndicatorsRequest{
		Districts:           []string{"5"},
		TermThresholdMonths: 24,
	})
	if err != nil {
		t.Fatalf("Indicators: %v", err)
	}

	if out.TotalWorks != 5 {
		t.Errorf("TotalWorks = %d", out.TotalWorks)
	}
	if out.TotalContractAmount != "12345.67" {
		t.Errorf("TotalContractAmount = %q", out.TotalContractAmount)
	}
	if len(out.ByType) != 2 || out.ByType[0].TotalAmount != "10000" {
		t.Errorf("ByType = %+v", out.ByType)
	}
	if len(out.ByStage) != 2 || out.ByStage[0].Count != 4 {
		t.Errorf("ByStage = %+v", out.ByStage)
	}
	if len(out.Neighborhoods) != 1 || out.Neighborhoods[0].District != "5" {
		t.Errorf("Neighborhoods = %+v", out.Neighborhoods)
	}
	if len(out.LongFinishedWorks) != 1 || out.LongFinishedWorks[0].TermMonths != 36 {
		t.Errorf("LongFinishedWorks = %+v", out.LongFinishedWorks)
	}
}

func TestIndicatorsSkipsOptionalQueries(t *testing.T) {
	store := newTestStore()
	store.reports.neighborhoods = []secondary.NeighborhoodInfo{{Name: "boedo", District: "5"}}
	store.reports.finished = []secondary.FinishedWork{{ID: 1, Name: "x", TermMonths: 30}}

	svc := NewReportService(store)
	out, err := svc.Indicators(context.Background(), primary.IndicatorsRequest{})
	if err != nil {
		t.Fatalf("Indicators: %v", err)
	}
	if out.Neighborhoods != nil {
		t.Error("neighborhood query ran without a district filter")
	}
	if out.LongFinishedWorks != nil {
		t.Error("finished-work query ran without a threshold")
	}
}

func TestIndicatorsPropagatesErrors(t *testing.T) {
	store := newTestStore()
	store.reports.err = errors.New("db closed")

	svc := NewReportService(store)
	if _, err := svc.Indicators(context.Background(), primary.IndicatorsRequest{}); err == nil {
		t.Fatal("expected error")
	}
}
