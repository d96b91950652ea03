package primary

import (
	"context"
	"time"
)

// WorkService defines the primary port for work lifecycle operations.
// Every mutating operation re-validates the work invariants before
// persisting; a violation aborts that operation only.
type WorkService interface {
	// CreateWork creates a work directly, resolving its lookups by name.
	CreateWork(ctx context.Context, req CreateWorkRequest) (*Work, error)

	// GetWork retrieves a work by id.
	GetWork(ctx context.Context, id int64) (*Work, error)

	// ListWorks retrieves works, optionally filtered by stage and type name.
	ListWorks(ctx context.Context, req ListWorksRequest) ([]*Work, error)

	// StartProject moves the work to the project stage and resets progress.
	StartProject(ctx context.Context, id int64) (*Work, error)

	// StartContracting moves the work to the contracting stage.
	StartContracting(ctx context.Context, id int64, req StartContractingRequest) (*Work, error)

	// Award moves the work to the awarded stage and links the contractor.
	Award(ctx context.Context, id int64, req AwardRequest) (*Work, error)

	// BeginExecution moves the work to the in-execution stage.
	BeginExecution(ctx context.Context, id int64, req BeginExecutionRequest) (*Work, error)

	// UpdateProgress sets the progress percentage; out-of-range values fail.
	UpdateProgress(ctx context.Context, id int64, percent float64) (*Work, error)

	// ExtendTerm adds months to the contractual term.
	ExtendTerm(ctx context.Context, id int64, additionalMonths int) (*Work, error)

	// AddWorkforce adds workers to the workforce count.
	AddWorkforce(ctx context.Context, id int64, additionalCount int) (*Work, error)

	// Finish moves the work to its finished terminal state.
	Finish(ctx context.Context, id int64) (*Work, error)

	// Rescind moves the work to its rescinded terminal state.
	Rescind(ctx context.Context, id int64) (*Work, error)
}

// Work represents a work at the port boundary.
type Work struct {
	ID              int64
	Name            string
	Description     string
	Environment     string
	Stage           string
	WorkType        string
	ContractAmount  string
	ProgressPercent float64
	TermMonths      int
	BidYear         int
	StartDate       string
	InitialEndDate  string
	WorkforceCount  *int
	FundingSource   string
	IsFeatured      bool
	IsFinished      bool
	IsRescinded     bool
}

// CreateWorkRequest contains parameters for creating a work manually.
type CreateWorkRequest struct {
	Name            string
	Description     string
	Environment     string
	WorkType        string
	ContractingType string
	ResponsibleArea string
	ContractAmount  string
	BidYear         int
}

// ListWorksRequest contains filter parameters for listing works.
type ListWorksRequest struct {
	Stage    string
	WorkType string
	Limit    int
}

// StartContractingRequest contains parameters for the contracting stage.
type StartContractingRequest struct {
	ContractingType string
	ContractNumber  string
}

// AwardRequest contains parameters for awarding a work. The contractor is
// resolved (or created) by its (company, tax id) identity.
type AwardRequest struct {
	CompanyName string
	TaxID       string
	FileNumber  string
}

// BeginExecutionRequest contains parameters for starting execution.
type BeginExecutionRequest struct {
	Featured       bool
	StartDate      *time.Time
	InitialEndDate *time.Time
	FundingSource  string
	WorkforceCount int
}
