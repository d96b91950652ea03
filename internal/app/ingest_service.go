package app

import (
	"context"
	"fmt"

	"github.com/example/obras/internal/core/cleanse"
	"github.com/example/obras/internal/core/work"
	"github.com/example/obras/internal/logger"
	"github.com/example/obras/internal/ports/primary"
	"github.com/example/obras/internal/ports/secondary"
)

// IngestServiceImpl implements the IngestService interface.
type IngestServiceImpl struct {
	store secondary.Store
}

// NewIngestService creates a new IngestService with injected dependencies.
func NewIngestService(store secondary.Store) *IngestServiceImpl {
	return &IngestServiceImpl{store: store}
}

// LoadRecords loads a cleaned batch into the relational store. Each record
// gets its own transaction: a failed record rolls back alone and the batch
// always runs to the end. Validation and storage failures alike are reported
// per row with their index and cause.
func (s *IngestServiceImpl) LoadRecords(ctx context.Context, records []cleanse.Record) (*primary.LoadReport, error) {
	log := logger.FromContext(ctx)
	report := &primary.LoadReport{}

	for i, rec := range records {
		err := s.store.WithinTx(ctx, func(tx secondary.Store) error {
			return s.loadOne(ctx, tx, rec)
		})
		if err == nil {
			report.Processed++
			continue
		}
		log.Warn("skipping record", "index", i, "name", rec.Name, "cause", err)
		report.Skipped++
		report.Failures = append(report.Failures, primary.RowFailure{
			Index: i,
			Cause: err.Error(),
		})
	}

	log.Info("load complete",
		"processed", report.Processed,
		"skipped", report.Skipped)
	return report, nil
}

// loadOne resolves every reference of one record and creates the work row.
// Resolution order follows the foreign keys: flat lookups first, then the
// district-scoped neighborhood, then the neighborhood-scoped address.
func (s *IngestServiceImpl) loadOne(ctx context.Context, tx secondary.Store, rec cleanse.Record) error {
	if err := work.Validate(work.Fields{
		Name:            rec.Name,
		Description:     rec.Description,
		TermMonths:      rec.TermMonths,
		ProgressPercent: rec.ProgressPercent,
		ContractAmount:  rec.ContractAmount,
	}); err != nil {
		return err
	}

	lookups := tx.Lookups()

	envID, _, err := lookups.GetOrCreate(ctx, secondary.LookupEnvironment, rec.Environment)
	if err != nil {
		return fmt.Errorf("failed to resolve environment: %w", err)
	}
	stageID, _, err := lookups.GetOrCreate(ctx, secondary.LookupStage, rec.Stage)
	if err != nil {
		return fmt.Errorf("failed to resolve stage: %w", err)
	}
	typeID, _, err := lookups.GetOrCreate(ctx, secondary.LookupWorkType, rec.WorkType)
	if err != nil {
		return fmt.Errorf("failed to resolve work type: %w", err)
	}
	contractingID, _, err := lookups.GetOrCreate(ctx, secondary.LookupContractingType, rec.ContractingType)
	if err != nil {
		return fmt.Errorf("failed to resolve contracting type: %w", err)
	}
	areaID, _, err := lookups.GetOrCreate(ctx, secondary.LookupResponsibleArea, rec.ResponsibleArea)
	if err != nil {
		return fmt.Errorf("failed to resolve responsible area: %w", err)
	}

	addressID, err := s.resolveAddress(ctx, lookups, rec)
	if err != nil {
		return err
	}

	var contractorID *int64
	if rec.Company != "" {
		id, _, err := lookups.GetOrCreateContractor(ctx, &secondary.ContractorRecord{
			CompanyName:    rec.Company,
			TaxID:          rec.TaxID,
			ContractNumber: rec.ContractNumber,
			FileNumber:     rec.FileNumber,
		})
		if err != nil {
			return fmt.Errorf("failed to resolve contractor: %w", err)
		}
		contractorID = &id
	}

	record := &secondary.WorkRecord{
		EnvironmentID:     envID,
		StageID:           stageID,
		WorkTypeID:        typeID,
		ContractingTypeID: contractingID,
		ResponsibleAreaID: areaID,
		AddressID:         addressID,
		ContractorID:      contractorID,
		Name:              rec.Name,
		Description:       rec.Description,
		ContractAmount:    rec.ContractAmount,
		StartDate:         rec.StartDate,
		InitialEndDate:    rec.InitialEndDate,
		TermMonths:        rec.TermMonths,
		ProgressPercent:   rec.ProgressPercent,
		BidYear:           rec.BidYear,
		PrimaryImageURL:   rec.PrimaryImageURL,
		IsFeatured:        rec.Featured,
		FundingSource:     rec.FundingSource,
	}
	if rec.Workforce > 0 {
		wf := rec.Workforce
		record.WorkforceCount = &wf
	}

	if _, err := tx.Works().Create(ctx, record); err != nil {
		return fmt.Errorf("failed to create work: %w", err)
	}
	return nil
}

// resolveAddress resolves district, neighborhood and address for one record.
// District 0 means the district is unknown; the neighborhood and address are
// then left unlinked rather than pinned to a fabricated district.
func (s *IngestServiceImpl) resolveAddress(ctx context.Context, lookups secondary.LookupRepository, rec cleanse.Record) (*int64, error) {
	if rec.District == 0 {
		return nil, nil
	}

	districtID, _, err := lookups.GetOrCreate(ctx, secondary.LookupDistrict, fmt.Sprintf("%d", rec.District))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve district: %w", err)
	}
	neighborhoodID, _, err := lookups.GetOrCreateNeighborhood(ctx, rec.Neighborhood, districtID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve neighborhood: %w", err)
	}
	if rec.Address == "" {
		return nil, nil
	}
	addressID, _, err := lookups.GetOrCreateAddress(ctx, &secondary.AddressRecord{
		LocationText:   rec.Address,
		NeighborhoodID: neighborhoodID,
		Latitude:       rec.Latitude,
		Longitude:      rec.Longitude,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve address: %w", err)
	}
	return &addressID, nil
}
