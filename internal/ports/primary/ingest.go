// Package primary defines the primary ports (driving adapters) for the
// application: the service interfaces the CLI talks to.
package primary

import (
	"context"

	"github.com/example/obras/internal/core/cleanse"
)

// IngestService defines the primary port for bulk loading cleaned records.
type IngestService interface {
	// LoadRecords resolves and persists the cleaned batch row by row. A
	// failed row is reported and skipped; the batch always runs to the end.
	LoadRecords(ctx context.Context, records []cleanse.Record) (*LoadReport, error)
}

// RowFailure reports one skipped row: its positional index in the cleaned
// batch and a human-readable cause.
type RowFailure struct {
	Index int
	Cause string
}

// LoadReport summarizes a bulk load.
type LoadReport struct {
	Processed int
	Skipped   int
	Failures  []RowFailure
}
