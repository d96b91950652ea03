package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/obras/internal/ports/secondary"
)

func TestAggregateByType(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	seedWork(t, store, "Obra A", "Proyecto", "Vial")
	seedWork(t, store, "Obra B", "Proyecto", "Vial")
	seedWork(t, store, "Obra C", "Proyecto", "Escuelas")

	aggs, err := store.Reports().AggregateByType(ctx)
	if err != nil {
		t.Fatalf("AggregateByType: %v", err)
	}
	if len(aggs) != 2 {
		t.Fatalf("got %d aggregates, want 2", len(aggs))
	}

	byType := make(map[string]secondary.TypeAggregate)
	for _, a := range aggs {
		byType[a.WorkType] = a
	}
	vial := byType["Vial"]
	if vial.Count != 2 {
		t.Errorf("Vial count = %d, want 2", vial.Count)
	}
	// Each seeded work carries 1000.50.
	if vial.TotalAmount.String() != "2001" {
		t.Errorf("Vial total = %s, want 2001", vial.TotalAmount)
	}
	if byType["Escuelas"].Count != 1 {
		t.Errorf("Escuelas count = %d, want 1", byType["Escuelas"].Count)
	}
}

func TestCountByStage(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	seedWork(t, store, "Obra A", "Proyecto", "Vial")
	seedWork(t, store, "Obra B", "En Ejecucion", "Vial")
	seedWork(t, store, "Obra C", "En Ejecucion", "Vial")

	counts, err := store.Reports().CountByStage(ctx)
	if err != nil {
		t.Fatalf("CountByStage: %v", err)
	}

	byStage := make(map[string]int)
	for _, c := range counts {
		byStage[c.Stage] = c.Count
	}
	if byStage["Proyecto"] != 1 || byStage["En Ejecucion"] != 2 {
		t.Errorf("stage counts = %v", byStage)
	}
}

func TestNeighborhoodsInDistricts(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	lookups := store.Lookups()

	seed := func(district, neighborhood string) {
		t.Helper()
		id, _, err := lookups.GetOrCreate(ctx, secondary.LookupDistrict, district)
		if err != nil {
			t.Fatalf("GetOrCreate district %s: %v", district, err)
		}
		if _, _, err := lookups.GetOrCreateNeighborhood(ctx, neighborhood, id); err != nil {
			t.Fatalf("GetOrCreateNeighborhood %s: %v", neighborhood, err)
		}
	}
	seed("4", "nueva pompeya")
	seed("7", "flores")
	seed("12", "villa urquiza")

	infos, err := store.Reports().NeighborhoodsInDistricts(ctx, []string{"4", "7"})
	if err != nil {
		t.Fatalf("NeighborhoodsInDistricts: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("got %d neighborhoods, want 2", len(infos))
	}
	for _, info := range infos {
		if info.District == "12" {
			t.Errorf("district 12 leaked into filter result: %+v", info)
		}
	}

	none, err := store.Reports().NeighborhoodsInDistricts(ctx, nil)
	if err != nil {
		t.Fatalf("empty filter: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("empty district set returned %d rows, want 0", len(none))
	}
}

func TestFinishedWorksOverTerm(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	longID := seedWork(t, store, "Obra Larga", "Finalizada", "Vial")
	rec, err := store.Works().GetByID(ctx, longID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	rec.IsFinished = true
	rec.TermMonths = 36
	if err := store.Works().Update(ctx, rec); err != nil {
		t.Fatalf("Update: %v", err)
	}

	// Finished but short, and long but unfinished: both excluded.
	shortID := seedWork(t, store, "Obra Corta", "Finalizada", "Vial")
	shortRec, _ := store.Works().GetByID(ctx, shortID)
	shortRec.IsFinished = true
	shortRec.TermMonths = 6
	if err := store.Works().Update(ctx, shortRec); err != nil {
		t.Fatalf("Update short: %v", err)
	}
	seedWork(t, store, "Obra Abierta", "En Ejecucion", "Vial")

	works, err := store.Reports().FinishedWorksOverTerm(ctx, 24)
	if err != nil {
		t.Fatalf("FinishedWorksOverTerm: %v", err)
	}
	if len(works) != 1 || works[0].Name != "Obra Larga" {
		t.Errorf("got %+v, want just Obra Larga", works)
	}
}

func TestTotalContractAmountAndCount(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	seedWork(t, store, "Obra A", "Proyecto", "Vial")
	seedWork(t, store, "Obra B", "Proyecto", "Vial")

	total, err := store.Reports().TotalContractAmount(ctx)
	if err != nil {
		t.Fatalf("TotalContractAmount: %v", err)
	}
	if total.String() != "2001" {
		t.Errorf("total = %s, want 2001", total)
	}

	n, err := store.Reports().CountWorks(ctx)
	if err != nil {
		t.Fatalf("CountWorks: %v", err)
	}
	if n != 2 {
		t.Errorf("CountWorks = %d, want 2", n)
	}
}
