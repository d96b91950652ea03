package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/example/obras/internal/ports/secondary"
)

// Ensure the mocks implement their interfaces
var (
	_ secondary.Store            = (*mockStore)(nil)
	_ secondary.LookupRepository = (*mockLookupRepository)(nil)
	_ secondary.WorkRepository   = (*mockWorkRepository)(nil)
	_ secondary.ReportRepository = (*mockReportRepository)(nil)
)

// mockStore implements secondary.Store over in-memory maps. WithinTx runs
// fn against the same repositories; rollback is not simulated, tests assert
// on the error instead.
type mockStore struct {
	lookups *mockLookupRepository
	works   *mockWorkRepository
	reports *mockReportRepository

	txErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		lookups: newMockLookupRepository(),
		works:   newMockWorkRepository(),
		reports: newMockReportRepository(),
	}
}

func (m *mockStore) Lookups() secondary.LookupRepository { return m.lookups }
func (m *mockStore) Works() secondary.WorkRepository     { return m.works }
func (m *mockStore) Reports() secondary.ReportRepository { return m.reports }

func (m *mockStore) WithinTx(ctx context.Context, fn func(secondary.Store) error) error {
	if m.txErr != nil {
		return m.txErr
	}
	return fn(m)
}

// mockLookupRepository implements secondary.LookupRepository for testing.
type mockLookupRepository struct {
	nextID        int64
	lookups       map[string]int64
	neighborhoods map[string]int64
	addresses     map[string]int64
	contractors   map[string]*secondary.ContractorRecord
	contractorIDs map[int64]*secondary.ContractorRecord

	getOrCreateErr error
}

func newMockLookupRepository() *mockLookupRepository {
	return &mockLookupRepository{
		lookups:       make(map[string]int64),
		neighborhoods: make(map[string]int64),
		addresses:     make(map[string]int64),
		contractors:   make(map[string]*secondary.ContractorRecord),
		contractorIDs: make(map[int64]*secondary.ContractorRecord),
	}
}

func (m *mockLookupRepository) nextIdentity() int64 {
	m.nextID++
	return m.nextID
}

func (m *mockLookupRepository) GetOrCreate(ctx context.Context, kind secondary.LookupKind, name string) (int64, bool, error) {
	if m.getOrCreateErr != nil {
		return 0, false, m.getOrCreateErr
	}
	key := string(kind) + "\x1f" + name
	if id, ok := m.lookups[key]; ok {
		return id, false, nil
	}
	id := m.nextIdentity()
	m.lookups[key] = id
	return id, true, nil
}

func (m *mockLookupRepository) GetOrCreateNeighborhood(ctx context.Context, name string, districtID int64) (int64, bool, error) {
	key := fmt.Sprintf("%s\x1f%d", name, districtID)
	if id, ok := m.neighborhoods[key]; ok {
		return id, false, nil
	}
	id := m.nextIdentity()
	m.neighborhoods[key] = id
	return id, true, nil
}

func (m *mockLookupRepository) GetOrCreateContractor(ctx context.Context, rec *secondary.ContractorRecord) (int64, bool, error) {
	key := rec.CompanyName + "\x1f" + rec.TaxID
	if existing, ok := m.contractors[key]; ok {
		return existing.ID, false, nil
	}
	id := m.nextIdentity()
	stored := *rec
	stored.ID = id
	m.contractors[key] = &stored
	m.contractorIDs[id] = &stored
	return id, true, nil
}

func (m *mockLookupRepository) GetOrCreateAddress(ctx context.Context, rec *secondary.AddressRecord) (int64, bool, error) {
	key := fmt.Sprintf("%s\x1f%d", rec.LocationText, rec.NeighborhoodID)
	if id, ok := m.addresses[key]; ok {
		return id, false, nil
	}
	id := m.nextIdentity()
	m.addresses[key] = id
	return id, true, nil
}

func (m *mockLookupRepository) GetContractor(ctx context.Context, id int64) (*secondary.ContractorRecord, error) {
	if rec, ok := m.contractorIDs[id]; ok {
		copied := *rec
		return &copied, nil
	}
	return nil, errors.New("contractor not found")
}

func (m *mockLookupRepository) UpdateContractor(ctx context.Context, rec *secondary.ContractorRecord) error {
	existing, ok := m.contractorIDs[rec.ID]
	if !ok {
		return errors.New("contractor not found")
	}
	*existing = *rec
	return nil
}

// lookupName reverses a flat lookup id back to its name.
func (m *mockLookupRepository) lookupName(kind secondary.LookupKind, id int64) string {
	prefix := string(kind) + "\x1f"
	for key, storedID := range m.lookups {
		if storedID == id && strings.HasPrefix(key, prefix) {
			return strings.TrimPrefix(key, prefix)
		}
	}
	return ""
}

// mockWorkRepository implements secondary.WorkRepository for testing. Display
// projections are resolved against the lookup mock on reads.
type mockWorkRepository struct {
	nextID int64
	works  map[int64]*secondary.WorkRecord

	lookups *mockLookupRepository

	createErr error
	updateErr error
}

func newMockWorkRepository() *mockWorkRepository {
	return &mockWorkRepository{works: make(map[int64]*secondary.WorkRecord)}
}

func (m *mockWorkRepository) Create(ctx context.Context, rec *secondary.WorkRecord) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.nextID++
	stored := *rec
	stored.ID = m.nextID
	m.works[stored.ID] = &stored
	return stored.ID, nil
}

func (m *mockWorkRepository) GetByID(ctx context.Context, id int64) (*secondary.WorkRecord, error) {
	rec, ok := m.works[id]
	if !ok {
		return nil, fmt.Errorf("work not found: %d", id)
	}
	copied := *rec
	if m.lookups != nil {
		copied.EnvironmentName = m.lookups.lookupName(secondary.LookupEnvironment, rec.EnvironmentID)
		copied.StageName = m.lookups.lookupName(secondary.LookupStage, rec.StageID)
		copied.WorkTypeName = m.lookups.lookupName(secondary.LookupWorkType, rec.WorkTypeID)
	}
	return &copied, nil
}

func (m *mockWorkRepository) Update(ctx context.Context, rec *secondary.WorkRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.works[rec.ID]; !ok {
		return fmt.Errorf("work not found: %d", rec.ID)
	}
	stored := *rec
	m.works[rec.ID] = &stored
	return nil
}

func (m *mockWorkRepository) List(ctx context.Context, filters secondary.WorkFilters) ([]*secondary.WorkRecord, error) {
	var result []*secondary.WorkRecord
	for id := int64(1); id <= m.nextID; id++ {
		rec, ok := m.works[id]
		if !ok {
			continue
		}
		copied, err := m.GetByID(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
		if filters.Stage != "" && copied.StageName != filters.Stage {
			continue
		}
		if filters.WorkType != "" && copied.WorkTypeName != filters.WorkType {
			continue
		}
		result = append(result, copied)
		if filters.Limit > 0 && len(result) >= filters.Limit {
			break
		}
	}
	return result, nil
}

func (m *mockWorkRepository) Count(ctx context.Context) (int, error) {
	return len(m.works), nil
}

// mockReportRepository implements secondary.ReportRepository with canned
// results.
type mockReportRepository struct {
	typeAggs      []secondary.TypeAggregate
	stageCounts   []secondary.StageCount
	neighborhoods []secondary.NeighborhoodInfo
	finished      []secondary.FinishedWork
	total         decimal.Decimal
	count         int

	err error
}

func newMockReportRepository() *mockReportRepository {
	return &mockReportRepository{}
}

func (m *mockReportRepository) AggregateByType(ctx context.Context) ([]secondary.TypeAggregate, error) {
	return m.typeAggs, m.err
}

func (m *mockReportRepository) CountByStage(ctx context.Context) ([]secondary.StageCount, error) {
	return m.stageCounts, m.err
}

func (m *mockReportRepository) NeighborhoodsInDistricts(ctx context.Context, districts []string) ([]secondary.NeighborhoodInfo, error) {
	return m.neighborhoods, m.err
}

func (m *mockReportRepository) FinishedWorksOverTerm(ctx context.Context, months int) ([]secondary.FinishedWork, error) {
	return m.finished, m.err
}

func (m *mockReportRepository) TotalContractAmount(ctx context.Context) (decimal.Decimal, error) {
	return m.total, m.err
}

func (m *mockReportRepository) CountWorks(ctx context.Context) (int, error) {
	return m.count, m.err
}

// newTestStore wires the mocks together so work reads resolve lookup names.
func newTestStore() *mockStore {
	store := newMockStore()
	store.works.lookups = store.lookups
	return store
}
