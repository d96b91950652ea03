// Package sqlite_test contains integration tests for SQLite repositories.
//
// All test setup loads the authoritative schema via db.GetSchemaSQL(), so a
// repository referencing a column that does not exist fails here first.
package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	sqliteadapter "github.com/example/obras/internal/adapters/sqlite"
	"github.com/example/obras/internal/db"
	"github.com/example/obras/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// A second pooled connection would see a different empty :memory: db.
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// setupStore creates a store over a fresh in-memory database.
func setupStore(t *testing.T) *sqliteadapter.Store {
	t.Helper()
	return sqliteadapter.NewStore(setupTestDB(t))
}

// seedWork resolves the minimal lookup graph and inserts one work, returning
// its id.
func seedWork(t *testing.T, store secondary.Store, name, stage, workType string) int64 {
	t.Helper()
	ctx := context.Background()
	lookups := store.Lookups()

	envID, _, err := lookups.GetOrCreate(ctx, secondary.LookupEnvironment, "Urbano")
	if err != nil {
		t.Fatalf("failed to seed environment: %v", err)
	}
	stageID, _, err := lookups.GetOrCreate(ctx, secondary.LookupStage, stage)
	if err != nil {
		t.Fatalf("failed to seed stage: %v", err)
	}
	typeID, _, err := lookups.GetOrCreate(ctx, secondary.LookupWorkType, workType)
	if err != nil {
		t.Fatalf("failed to seed work type: %v", err)
	}
	ctID, _, err := lookups.GetOrCreate(ctx, secondary.LookupContractingType, "Licitacion Publica")
	if err != nil {
		t.Fatalf("failed to seed contracting type: %v", err)
	}
	areaID, _, err := lookups.GetOrCreate(ctx, secondary.LookupResponsibleArea, "Espacio Publico")
	if err != nil {
		t.Fatalf("failed to seed responsible area: %v", err)
	}

	id, err := store.Works().Create(ctx, &secondary.WorkRecord{
		EnvironmentID:     envID,
		StageID:           stageID,
		WorkTypeID:        typeID,
		ContractingTypeID: ctID,
		ResponsibleAreaID: areaID,
		Name:              name,
		Description:       "Puesta en valor",
		ContractAmount:    decimal.RequireFromString("1000.50"),
		TermMonths:        12,
		ProgressPercent:   10,
		BidYear:           2019,
	})
	if err != nil {
		t.Fatalf("failed to seed work: %v", err)
	}
	return id
}
