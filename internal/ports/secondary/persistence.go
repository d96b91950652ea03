// Package secondary defines the secondary ports (driven adapters) for the
// application: the interfaces through which it reaches the relational store.
package secondary

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LookupKind identifies one of the flat lookup tables whose identity key is
// the name alone.
type LookupKind string

const (
	LookupEnvironment     LookupKind = "environment"
	LookupStage           LookupKind = "stage"
	LookupWorkType        LookupKind = "work_type"
	LookupContractingType LookupKind = "contracting_type"
	LookupResponsibleArea LookupKind = "responsible_area"
	LookupDistrict        LookupKind = "district"
)

// NeighborhoodRecord represents a neighborhood scoped to one district.
type NeighborhoodRecord struct {
	ID         int64
	Name       string
	DistrictID int64
}

// ContractorRecord represents an awarded bidding company. Identity for
// resolution is the (CompanyName, TaxID) pair. ContractNumber and FileNumber
// are free text; FileNumber may hold several semicolon-separated references.
type ContractorRecord struct {
	ID             int64
	CompanyName    string
	TaxID          string
	ContractNumber string
	FileNumber     string
}

// AddressRecord represents a location scoped to one neighborhood. Identity
// for resolution is the (LocationText, NeighborhoodID) pair.
type AddressRecord struct {
	ID             int64
	LocationText   string
	NeighborhoodID int64
	Latitude       *float64
	Longitude      *float64
}

// WorkRecord represents a work as stored in persistence. The *Name fields
// are display projections populated on reads and ignored on writes.
type WorkRecord struct {
	ID                int64
	EnvironmentID     int64
	StageID           int64
	WorkTypeID        int64
	ContractingTypeID int64
	ResponsibleAreaID int64
	AddressID         *int64
	ContractorID      *int64
	Name              string
	Description       string
	ContractAmount    decimal.Decimal
	StartDate         *time.Time
	InitialEndDate    *time.Time
	TermMonths        int
	ProgressPercent   float64
	BidYear           int
	PrimaryImageURL   string
	WorkforceCount    *int
	IsFeatured        bool
	FundingSource     string
	IsFinished        bool
	IsRescinded       bool

	EnvironmentName string
	StageName       string
	WorkTypeName    string
	CreatedAt       string
	UpdatedAt       string
}

// WorkFilters contains filter options for querying works.
type WorkFilters struct {
	Stage    string
	WorkType string
	Limit    int
}

// LookupRepository resolves reference data by identity, creating rows on
// first sight. Get-or-create must be idempotent: the same identity tuple
// always yields the same row.
type LookupRepository interface {
	// GetOrCreate resolves a flat lookup row by name.
	GetOrCreate(ctx context.Context, kind LookupKind, name string) (id int64, created bool, err error)

	// GetOrCreateNeighborhood resolves a neighborhood within its district.
	GetOrCreateNeighborhood(ctx context.Context, name string, districtID int64) (id int64, created bool, err error)

	// GetOrCreateContractor resolves a contractor by (company, tax id).
	GetOrCreateContractor(ctx context.Context, rec *ContractorRecord) (id int64, created bool, err error)

	// GetOrCreateAddress resolves an address within its neighborhood.
	GetOrCreateAddress(ctx context.Context, rec *AddressRecord) (id int64, created bool, err error)

	// GetContractor retrieves a contractor by id.
	GetContractor(ctx context.Context, id int64) (*ContractorRecord, error)

	// UpdateContractor updates a contractor's mutable fields.
	UpdateContractor(ctx context.Context, rec *ContractorRecord) error
}

// WorkRepository persists work records.
type WorkRepository interface {
	// Create persists a new work and returns its id.
	Create(ctx context.Context, rec *WorkRecord) (int64, error)

	// GetByID retrieves a work with its display projections.
	GetByID(ctx context.Context, id int64) (*WorkRecord, error)

	// Update rewrites the mutable fields of an existing work.
	Update(ctx context.Context, rec *WorkRecord) error

	// List retrieves works matching the given filters.
	List(ctx context.Context, filters WorkFilters) ([]*WorkRecord, error)

	// Count returns the number of persisted works.
	Count(ctx context.Context) (int, error)
}

// TypeAggregate is the per-work-type count and amount rollup.
type TypeAggregate struct {
	WorkType    string
	Count       int
	TotalAmount decimal.Decimal
}

// StageCount is the per-stage work count.
type StageCount struct {
	Stage string
	Count int
}

// NeighborhoodInfo pairs a neighborhood with its district for reporting.
type NeighborhoodInfo struct {
	Name     string
	District string
}

// FinishedWork is a finished work selected by term threshold.
type FinishedWork struct {
	ID         int64
	Name       string
	TermMonths int
}

// ReportRepository serves the aggregate indicator queries.
type ReportRepository interface {
	// AggregateByType returns count and total amount grouped by work type.
	AggregateByType(ctx context.Context) ([]TypeAggregate, error)

	// CountByStage returns work counts grouped by stage.
	CountByStage(ctx context.Context) ([]StageCount, error)

	// NeighborhoodsInDistricts lists neighborhoods within the named districts.
	NeighborhoodsInDistricts(ctx context.Context, districts []string) ([]NeighborhoodInfo, error)

	// FinishedWorksOverTerm lists finished works whose term exceeds months.
	FinishedWorksOverTerm(ctx context.Context, months int) ([]FinishedWork, error)

	// TotalContractAmount sums the contract amount over all works.
	TotalContractAmount(ctx context.Context) (decimal.Decimal, error)

	// CountWorks returns the total number of works.
	CountWorks(ctx context.Context) (int, error)
}

// Store bundles the repositories with a transactional unit of work. WithinTx
// runs fn against repositories bound to one transaction, committing on nil
// and rolling back on error.
type Store interface {
	Lookups() LookupRepository
	Works() WorkRepository
	Reports() ReportRepository

	WithinTx(ctx context.Context, fn func(Store) error) error
}
