package primary

import "context"

// ReportService defines the primary port for aggregate indicators over the
// persisted works.
type ReportService interface {
	// Indicators computes the standard indicator set.
	Indicators(ctx context.Context, req IndicatorsRequest) (*Indicators, error)
}

// IndicatorsRequest narrows the indicator queries.
type IndicatorsRequest struct {
	// Districts filters the neighborhood listing; empty means skip it.
	Districts []string

	// TermThresholdMonths selects finished works whose term exceeds it.
	TermThresholdMonths int
}

// Indicators is the aggregate report.
type Indicators struct {
	TotalWorks          int
	TotalContractAmount string
	ByType              []TypeIndicator
	ByStage             []StageIndicator
	Neighborhoods       []NeighborhoodIndicator
	LongFinishedWorks   []FinishedWorkIndicator
}

// TypeIndicator is the per-work-type rollup.
type TypeIndicator struct {
	WorkType    string
	Count       int
	TotalAmount string
}

// StageIndicator is the per-stage count.
type StageIndicator struct {
	Stage string
	Count int
}

// NeighborhoodIndicator pairs a neighborhood with its district.
type NeighborhoodIndicator struct {
	Name     string
	District string
}

// FinishedWorkIndicator is a finished work over the term threshold.
type FinishedWorkIndicator struct {
	ID         int64
	Name       string
	TermMonths int
}
