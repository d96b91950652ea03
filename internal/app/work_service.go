package app

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/example/obras/internal/core/work"
	"github.com/example/obras/internal/logger"
	"github.com/example/obras/internal/ports/primary"
	"github.com/example/obras/internal/ports/secondary"
)

const dateLayout = "2006-01-02"

// WorkServiceImpl implements the WorkService interface.
type WorkServiceImpl struct {
	store secondary.Store
}

// NewWorkService creates a new WorkService with injected dependencies.
func NewWorkService(store secondary.Store) *WorkServiceImpl {
	return &WorkServiceImpl{store: store}
}

// CreateWork creates a work directly, resolving its lookups by name. New
// works start in the project stage.
func (s *WorkServiceImpl) CreateWork(ctx context.Context, req primary.CreateWorkRequest) (*primary.Work, error) {
	amount := decimal.Zero
	if req.ContractAmount != "" {
		parsed, err := decimal.NewFromString(req.ContractAmount)
		if err != nil {
			return nil, fmt.Errorf("%w: contract_amount %q is not a decimal", work.ErrValidation, req.ContractAmount)
		}
		amount = parsed
	}

	if err := work.Validate(work.Fields{
		Name:           req.Name,
		Description:    req.Description,
		ContractAmount: amount,
	}); err != nil {
		return nil, err
	}

	var out *primary.Work
	err := s.store.WithinTx(ctx, func(tx secondary.Store) error {
		lookups := tx.Lookups()

		envID, _, err := lookups.GetOrCreate(ctx, secondary.LookupEnvironment, req.Environment)
		if err != nil {
			return fmt.Errorf("failed to resolve environment: %w", err)
		}
		stageID, _, err := lookups.GetOrCreate(ctx, secondary.LookupStage, string(work.StageProject))
		if err != nil {
			return fmt.Errorf("failed to resolve stage: %w", err)
		}
		typeID, _, err := lookups.GetOrCreate(ctx, secondary.LookupWorkType, req.WorkType)
		if err != nil {
			return fmt.Errorf("failed to resolve work type: %w", err)
		}
		contractingID, _, err := lookups.GetOrCreate(ctx, secondary.LookupContractingType, req.ContractingType)
		if err != nil {
			return fmt.Errorf("failed to resolve contracting type: %w", err)
		}
		areaID, _, err := lookups.GetOrCreate(ctx, secondary.LookupResponsibleArea, req.ResponsibleArea)
		if err != nil {
			return fmt.Errorf("failed to resolve responsible area: %w", err)
		}

		record := &secondary.WorkRecord{
			EnvironmentID:     envID,
			StageID:           stageID,
			WorkTypeID:        typeID,
			ContractingTypeID: contractingID,
			ResponsibleAreaID: areaID,
			Name:              req.Name,
			Description:       req.Description,
			ContractAmount:    amount,
			BidYear:           req.BidYear,
		}
		id, err := tx.Works().Create(ctx, record)
		if err != nil {
			return fmt.Errorf("failed to create work: %w", err)
		}

		created, err := tx.Works().GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to read created work: %w", err)
		}
		out = recordToWork(created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetWork retrieves a work by id.
func (s *WorkServiceImpl) GetWork(ctx context.Context, id int64) (*primary.Work, error) {
	record, err := s.store.Works().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return recordToWork(record), nil
}

// ListWorks retrieves works, optionally filtered by stage and type name.
func (s *WorkServiceImpl) ListWorks(ctx context.Context, req primary.ListWorksRequest) ([]*primary.Work, error) {
	records, err := s.store.Works().List(ctx, secondary.WorkFilters{
		Stage:    req.Stage,
		WorkType: req.WorkType,
		Limit:    req.Limit,
	})
	if err != nil {
		return nil, err
	}
	works := make([]*primary.Work, len(records))
	for i, record := range records {
		works[i] = recordToWork(record)
	}
	return works, nil
}

// StartProject moves the work to the project stage and resets progress.
func (s *WorkServiceImpl) StartProject(ctx context.Context, id int64) (*primary.Work, error) {
	return s.transition(ctx, id, work.StageProject, func(_ secondary.Store, record *secondary.WorkRecord) error {
		record.ProgressPercent = 0
		return nil
	})
}

// StartContracting moves the work to the contracting stage. The contract
// number lives on the contractor row, so it can only be recorded once a
// contractor is linked; until then it is logged and dropped.
func (s *WorkServiceImpl) StartContracting(ctx context.Context, id int64, req primary.StartContractingRequest) (*primary.Work, error) {
	return s.transition(ctx, id, work.StageContracting, func(tx secondary.Store, record *secondary.WorkRecord) error {
		if req.ContractingType != "" {
			ctID, _, err := tx.Lookups().GetOrCreate(ctx, secondary.LookupContractingType, req.ContractingType)
			if err != nil {
				return fmt.Errorf("failed to resolve contracting type: %w", err)
			}
			record.ContractingTypeID = ctID
		}
		if req.ContractNumber == "" {
			return nil
		}
		if record.ContractorID == nil {
			logger.FromContext(ctx).Warn("no contractor linked, dropping contract number",
				"work", id, "contract_number", req.ContractNumber)
			return nil
		}
		contractor, err := tx.Lookups().GetContractor(ctx, *record.ContractorID)
		if err != nil {
			return fmt.Errorf("failed to read contractor: %w", err)
		}
		contractor.ContractNumber = req.ContractNumber
		if err := tx.Lookups().UpdateContractor(ctx, contractor); err != nil {
			return fmt.Errorf("failed to update contractor: %w", err)
		}
		return nil
	})
}

// Award moves the work to the awarded stage and links the contractor,
// creating it on first sight of its (company, tax id) identity.
func (s *WorkServiceImpl) Award(ctx context.Context, id int64, req primary.AwardRequest) (*primary.Work, error) {
	if req.CompanyName == "" {
		return nil, fmt.Errorf("%w: company name must not be empty", work.ErrValidation)
	}
	return s.transition(ctx, id, work.StageAwarded, func(tx secondary.Store, record *secondary.WorkRecord) error {
		contractorID, created, err := tx.Lookups().GetOrCreateContractor(ctx, &secondary.ContractorRecord{
			CompanyName: req.CompanyName,
			TaxID:       req.TaxID,
			FileNumber:  req.FileNumber,
		})
		if err != nil {
			return fmt.Errorf("failed to resolve contractor: %w", err)
		}
		// An existing contractor keeps its stored values on resolution, so
		// the award's file number has to be written explicitly.
		if !created && req.FileNumber != "" {
			contractor, err := tx.Lookups().GetContractor(ctx, contractorID)
			if err != nil {
				return fmt.Errorf("failed to read contractor: %w", err)
			}
			contractor.FileNumber = req.FileNumber
			if err := tx.Lookups().UpdateContractor(ctx, contractor); err != nil {
				return fmt.Errorf("failed to update contractor: %w", err)
			}
		}
		record.ContractorID = &contractorID
		return nil
	})
}

// BeginExecution moves the work to the in-execution stage and records the
// execution attributes.
func (s *WorkServiceImpl) BeginExecution(ctx context.Context, id int64, req primary.BeginExecutionRequest) (*primary.Work, error) {
	return s.transition(ctx, id, work.StageExecution, func(_ secondary.Store, record *secondary.WorkRecord) error {
		record.IsFeatured = req.Featured
		if req.StartDate != nil {
			record.StartDate = req.StartDate
		}
		if req.InitialEndDate != nil {
			record.InitialEndDate = req.InitialEndDate
		}
		if req.FundingSource != "" {
			record.FundingSource = req.FundingSource
		}
		if req.WorkforceCount > 0 {
			wf := req.WorkforceCount
			record.WorkforceCount = &wf
		}
		return nil
	})
}

// UpdateProgress sets the progress percentage.
func (s *WorkServiceImpl) UpdateProgress(ctx context.Context, id int64, percent float64) (*primary.Work, error) {
	if result := work.CanUpdateProgress(percent); !result.Allowed {
		return nil, result.Error()
	}
	return s.mutate(ctx, id, func(record *secondary.WorkRecord) error {
		record.ProgressPercent = percent
		return nil
	})
}

// ExtendTerm adds months to the contractual term.
func (s *WorkServiceImpl) ExtendTerm(ctx context.Context, id int64, additionalMonths int) (*primary.Work, error) {
	if result := work.CanExtendTerm(additionalMonths); !result.Allowed {
		return nil, result.Error()
	}
	return s.mutate(ctx, id, func(record *secondary.WorkRecord) error {
		record.TermMonths += additionalMonths
		return nil
	})
}

// AddWorkforce adds workers to the workforce count.
func (s *WorkServiceImpl) AddWorkforce(ctx context.Context, id int64, additionalCount int) (*primary.Work, error) {
	if result := work.CanAddWorkforce(additionalCount); !result.Allowed {
		return nil, result.Error()
	}
	return s.mutate(ctx, id, func(record *secondary.WorkRecord) error {
		current := 0
		if record.WorkforceCount != nil {
			current = *record.WorkforceCount
		}
		total := current + additionalCount
		record.WorkforceCount = &total
		return nil
	})
}

// Finish moves the work to its finished terminal state with full progress.
func (s *WorkServiceImpl) Finish(ctx context.Context, id int64) (*primary.Work, error) {
	return s.transition(ctx, id, work.StageFinished, func(_ secondary.Store, record *secondary.WorkRecord) error {
		record.IsFinished = true
		record.ProgressPercent = 100
		return nil
	})
}

// Rescind moves the work to its rescinded terminal state.
func (s *WorkServiceImpl) Rescind(ctx context.Context, id int64) (*primary.Work, error) {
	return s.transition(ctx, id, work.StageRescinded, func(_ secondary.Store, record *secondary.WorkRecord) error {
		record.IsRescinded = true
		return nil
	})
}

// transition loads the work, checks the stage-change guard, applies the
// stage-specific mutation and persists, all in one transaction.
func (s *WorkServiceImpl) transition(ctx context.Context, id int64, target work.Stage, apply func(secondary.Store, *secondary.WorkRecord) error) (*primary.Work, error) {
	err := s.store.WithinTx(ctx, func(tx secondary.Store) error {
		record, err := tx.Works().GetByID(ctx, id)
		if err != nil {
			return err
		}

		guardCtx := work.TransitionContext{
			WorkID:       record.ID,
			CurrentStage: work.Stage(record.StageName),
			IsFinished:   record.IsFinished,
			IsRescinded:  record.IsRescinded,
		}
		if result := work.CanTransition(guardCtx); !result.Allowed {
			return result.Error()
		}

		stageID, _, err := tx.Lookups().GetOrCreate(ctx, secondary.LookupStage, string(target))
		if err != nil {
			return fmt.Errorf("failed to resolve stage: %w", err)
		}
		record.StageID = stageID

		if err := apply(tx, record); err != nil {
			return err
		}
		return s.save(ctx, tx, record)
	})
	if err != nil {
		return nil, err
	}
	return s.GetWork(ctx, id)
}

// mutate loads the work and persists a field change without changing stage.
// Terminal works are immutable, so the transition guard still applies.
func (s *WorkServiceImpl) mutate(ctx context.Context, id int64, apply func(*secondary.WorkRecord) error) (*primary.Work, error) {
	err := s.store.WithinTx(ctx, func(tx secondary.Store) error {
		record, err := tx.Works().GetByID(ctx, id)
		if err != nil {
			return err
		}

		guardCtx := work.TransitionContext{
			WorkID:       record.ID,
			CurrentStage: work.Stage(record.StageName),
			IsFinished:   record.IsFinished,
			IsRescinded:  record.IsRescinded,
		}
		if result := work.CanTransition(guardCtx); !result.Allowed {
			return result.Error()
		}

		if err := apply(record); err != nil {
			return err
		}
		return s.save(ctx, tx, record)
	})
	if err != nil {
		return nil, err
	}
	return s.GetWork(ctx, id)
}

// save re-validates the record invariants and writes it.
func (s *WorkServiceImpl) save(ctx context.Context, tx secondary.Store, record *secondary.WorkRecord) error {
	if err := work.Validate(work.Fields{
		Name:            record.Name,
		Description:     record.Description,
		TermMonths:      record.TermMonths,
		ProgressPercent: record.ProgressPercent,
		ContractAmount:  record.ContractAmount,
		WorkforceCount:  record.WorkforceCount,
	}); err != nil {
		return err
	}
	if err := tx.Works().Update(ctx, record); err != nil {
		return fmt.Errorf("failed to update work: %w", err)
	}
	return nil
}

func recordToWork(record *secondary.WorkRecord) *primary.Work {
	w := &primary.Work{
		ID:              record.ID,
		Name:            record.Name,
		Description:     record.Description,
		Environment:     record.EnvironmentName,
		Stage:           record.StageName,
		WorkType:        record.WorkTypeName,
		ContractAmount:  record.ContractAmount.String(),
		ProgressPercent: record.ProgressPercent,
		TermMonths:      record.TermMonths,
		BidYear:         record.BidYear,
		WorkforceCount:  record.WorkforceCount,
		FundingSource:   record.FundingSource,
		IsFeatured:      record.IsFeatured,
		IsFinished:      record.IsFinished,
		IsRescinded:     record.IsRescinded,
	}
	if record.StartDate != nil {
		w.StartDate = record.StartDate.Format(dateLayout)
	}
	if record.InitialEndDate != nil {
		w.InitialEndDate = record.InitialEndDate.Format(dateLayout)
	}
	return w
}
