package app

import (
	"context"
	"fmt"

	"github.com/example/obras/internal/ports/primary"
	"github.com/example/obras/internal/ports/secondary"
)

// ReportServiceImpl implements the ReportService interface.
type ReportServiceImpl struct {
	store secondary.Store
}

// NewReportService creates a new ReportService with injected dependencies.
func NewReportService(store secondary.Store) *ReportServiceImpl {
	return &ReportServiceImpl{store: store}
}

// Indicators computes the standard indicator set from the persisted works.
func (s *ReportServiceImpl) Indicators(ctx context.Context, req primary.IndicatorsRequest) (*primary.Indicators, error) {
	reports := s.store.Reports()

	total, err := reports.CountWorks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count works: %w", err)
	}
	amount, err := reports.TotalContractAmount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to total contract amounts: %w", err)
	}
	byType, err := reports.AggregateByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by type: %w", err)
	}
	byStage, err := reports.CountByStage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count by stage: %w", err)
	}

	out := &primary.Indicators{
		TotalWorks:          total,
		TotalContractAmount: amount.String(),
	}
	for _, agg := range byType {
		out.ByType = append(out.ByType, primary.TypeIndicator{
			WorkType:    agg.WorkType,
			Count:       agg.Count,
			TotalAmount: agg.TotalAmount.String(),
		})
	}
	for _, sc := range byStage {
		out.ByStage = append(out.ByStage, primary.StageIndicator{
			Stage: sc.Stage,
			Count: sc.Count,
		})
	}

	if len(req.Districts) > 0 {
		infos, err := reports.NeighborhoodsInDistricts(ctx, req.Districts)
		if err != nil {
			return nil, fmt.Errorf("failed to list neighborhoods: %w", err)
		}
		for _, info := range infos {
			out.Neighborhoods = append(out.Neighborhoods, primary.NeighborhoodIndicator{
				Name:     info.Name,
				District: info.District,
			})
		}
	}

	if req.TermThresholdMonths > 0 {
		finished, err := reports.FinishedWorksOverTerm(ctx, req.TermThresholdMonths)
		if err != nil {
			return nil, fmt.Errorf("failed to list finished works: %w", err)
		}
		for _, fw := range finished {
			out.LongFinishedWorks = append(out.LongFinishedWorks, primary.FinishedWorkIndicator{
				ID:         fw.ID,
				Name:       fw.Name,
				TermMonths: fw.TermMonths,
			})
		}
	}

	return out, nil
}
