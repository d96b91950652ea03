package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/obras/internal/ports/secondary"
)

// lookupTables maps lookup kinds to their table names. All flat lookups
// share the (id, name UNIQUE) shape.
var lookupTables = map[secondary.LookupKind]string{
	secondary.LookupEnvironment:     "environments",
	secondary.LookupStage:           "stages",
	secondary.LookupWorkType:        "work_types",
	secondary.LookupContractingType: "contracting_types",
	secondary.LookupResponsibleArea: "responsible_areas",
	secondary.LookupDistrict:        "districts",
}

// LookupRepository implements secondary.LookupRepository with SQLite.
type LookupRepository struct {
	q DBTX
}

// NewLookupRepository creates a lookup repository over the given connection.
func NewLookupRepository(q DBTX) *LookupRepository {
	return &LookupRepository{q: q}
}

// GetOrCreate resolves a flat lookup row by name, inserting on first sight.
func (r *LookupRepository) GetOrCreate(ctx context.Context, kind secondary.LookupKind, name string) (int64, bool, error) {
	table, ok := lookupTables[kind]
	if !ok {
		return 0, false, fmt.Errorf("unknown lookup kind %q", kind)
	}

	var id int64
	err := r.q.QueryRowContext(ctx,
		"SELECT id FROM "+table+" WHERE name = ?", name,
	).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if err != sql.ErrNoRows {
		return 0, false, fmt.Errorf("failed to look up %s %q: %w", kind, name, err)
	}

	res, err := r.q.ExecContext(ctx,
		"INSERT INTO "+table+" (name) VALUES (?)", name,
	)
	if err != nil {
		return 0, false, fmt.Errorf("failed to create %s %q: %w", kind, name, err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read %s id: %w", kind, err)
	}
	return id, true, nil
}

// GetOrCreateNeighborhood resolves a neighborhood by (name, district).
func (r *LookupRepository) GetOrCreateNeighborhood(ctx context.Context, name string, districtID int64) (int64, bool, error) {
	var id int64
	err := r.q.QueryRowContext(ctx,
		"SELECT id FROM neighborhoods WHERE name = ? AND district_id = ?",
		name, districtID,
	).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if err != sql.ErrNoRows {
		return 0, false, fmt.Errorf("failed to look up neighborhood %q: %w", name, err)
	}

	res, err := r.q.ExecContext(ctx,
		"INSERT INTO neighborhoods (name, district_id) VALUES (?, ?)",
		name, districtID,
	)
	if err != nil {
		return 0, false, fmt.Errorf("failed to create neighborhood %q: %w", name, err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read neighborhood id: %w", err)
	}
	return id, true, nil
}

// GetOrCreateContractor resolves a contractor by (company name, tax id).
// Contract and file numbers are only written when the row is created; an
// existing contractor keeps its values.
func (r *LookupRepository) GetOrCreateContractor(ctx context.Context, rec *secondary.ContractorRecord) (int64, bool, error) {
	var id int64
	err := r.q.QueryRowContext(ctx,
		"SELECT id FROM contractors WHERE company_name = ? AND tax_id = ?",
		rec.CompanyName, rec.TaxID,
	).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if err != sql.ErrNoRows {
		return 0, false, fmt.Errorf("failed to look up contractor %q: %w", rec.CompanyName, err)
	}

	res, err := r.q.ExecContext(ctx,
		"INSERT INTO contractors (company_name, tax_id, contract_number, file_number) VALUES (?, ?, ?, ?)",
		rec.CompanyName, rec.TaxID, nullString(rec.ContractNumber), nullString(rec.FileNumber),
	)
	if err != nil {
		return 0, false, fmt.Errorf("failed to create contractor %q: %w", rec.CompanyName, err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read contractor id: %w", err)
	}
	return id, true, nil
}

// GetOrCreateAddress resolves an address by (location text, neighborhood).
func (r *LookupRepository) GetOrCreateAddress(ctx context.Context, rec *secondary.AddressRecord) (int64, bool, error) {
	var id int64
	err := r.q.QueryRowContext(ctx,
		"SELECT id FROM addresses WHERE location_text = ? AND neighborhood_id = ?",
		rec.LocationText, rec.NeighborhoodID,
	).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if err != sql.ErrNoRows {
		return 0, false, fmt.Errorf("failed to look up address %q: %w", rec.LocationText, err)
	}

	res, err := r.q.ExecContext(ctx,
		"INSERT INTO addresses (location_text, neighborhood_id, latitude, longitude) VALUES (?, ?, ?, ?)",
		rec.LocationText, rec.NeighborhoodID, nullFloat(rec.Latitude), nullFloat(rec.Longitude),
	)
	if err != nil {
		return 0, false, fmt.Errorf("failed to create address %q: %w", rec.LocationText, err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read address id: %w", err)
	}
	return id, true, nil
}

// GetContractor retrieves a contractor by id.
func (r *LookupRepository) GetContractor(ctx context.Context, id int64) (*secondary.ContractorRecord, error) {
	var (
		contractNumber sql.NullString
		fileNumber     sql.NullString
	)

	rec := &secondary.ContractorRecord{}
	err := r.q.QueryRowContext(ctx,
		"SELECT id, company_name, tax_id, contract_number, file_number FROM contractors WHERE id = ?",
		id,
	).Scan(&rec.ID, &rec.CompanyName, &rec.TaxID, &contractNumber, &fileNumber)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("contractor %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contractor: %w", err)
	}

	rec.ContractNumber = contractNumber.String
	rec.FileNumber = fileNumber.String
	return rec, nil
}

// UpdateContractor updates the contract and file numbers on a contractor.
func (r *LookupRepository) UpdateContractor(ctx context.Context, rec *secondary.ContractorRecord) error {
	_, err := r.q.ExecContext(ctx,
		"UPDATE contractors SET contract_number = ?, file_number = ? WHERE id = ?",
		nullString(rec.ContractNumber), nullString(rec.FileNumber), rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update contractor %d: %w", rec.ID, err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
