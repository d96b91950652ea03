package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/obras/internal/ports/secondary"
)

// WorkRepository implements secondary.WorkRepository with SQLite.
type WorkRepository struct {
	q DBTX
}

// NewWorkRepository creates a work repository over the given connection.
func NewWorkRepository(q DBTX) *WorkRepository {
	return &WorkRepository{q: q}
}

const dateLayout = "2006-01-02"

// workSelect joins the display lookups every read needs.
const workSelect = `
SELECT w.id, w.environment_id, w.stage_id, w.work_type_id, w.contracting_type_id,
       w.responsible_area_id, w.address_id, w.contractor_id, w.name, w.description,
       w.contract_amount, w.start_date, w.initial_end_date, w.term_months,
       w.progress_percent, w.bid_year, w.primary_image_url, w.workforce_count,
       w.is_featured, w.funding_source, w.is_finished, w.is_rescinded,
       e.name, s.name, t.name, w.created_at, w.updated_at
FROM works w
JOIN environments e ON e.id = w.environment_id
JOIN stages s ON s.id = w.stage_id
JOIN work_types t ON t.id = w.work_type_id`

// Create persists a new work and returns its id.
func (r *WorkRepository) Create(ctx context.Context, rec *secondary.WorkRecord) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
INSERT INTO works (
	environment_id, stage_id, work_type_id, contracting_type_id,
	responsible_area_id, address_id, contractor_id, name, description,
	contract_amount, start_date, initial_end_date, term_months,
	progress_percent, bid_year, primary_image_url, workforce_count,
	is_featured, funding_source, is_finished, is_rescinded
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.EnvironmentID, rec.StageID, rec.WorkTypeID, rec.ContractingTypeID,
		rec.ResponsibleAreaID, nullInt64(rec.AddressID), nullInt64(rec.ContractorID),
		rec.Name, rec.Description, rec.ContractAmount.String(),
		nullDate(rec.StartDate), nullDate(rec.InitialEndDate), rec.TermMonths,
		rec.ProgressPercent, rec.BidYear, nullString(rec.PrimaryImageURL),
		nullInt(rec.WorkforceCount), rec.IsFeatured, nullString(rec.FundingSource),
		rec.IsFinished, rec.IsRescinded,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create work: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read work id: %w", err)
	}
	return id, nil
}

// GetByID retrieves a work with its display projections.
func (r *WorkRepository) GetByID(ctx context.Context, id int64) (*secondary.WorkRecord, error) {
	row := r.q.QueryRowContext(ctx, workSelect+" WHERE w.id = ?", id)

	rec, err := scanWork(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("work %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get work %d: %w", id, err)
	}
	return rec, nil
}

// Update rewrites the mutable fields of an existing work.
func (r *WorkRepository) Update(ctx context.Context, rec *secondary.WorkRecord) error {
	res, err := r.q.ExecContext(ctx, `
UPDATE works SET
	stage_id = ?, contracting_type_id = ?, contractor_id = ?,
	name = ?, description = ?, contract_amount = ?,
	start_date = ?, initial_end_date = ?, term_months = ?,
	progress_percent = ?, workforce_count = ?, is_featured = ?,
	funding_source = ?, is_finished = ?, is_rescinded = ?,
	updated_at = CURRENT_TIMESTAMP
WHERE id = ?`,
		rec.StageID, rec.ContractingTypeID, nullInt64(rec.ContractorID),
		rec.Name, rec.Description, rec.ContractAmount.String(),
		nullDate(rec.StartDate), nullDate(rec.InitialEndDate), rec.TermMonths,
		rec.ProgressPercent, nullInt(rec.WorkforceCount), rec.IsFeatured,
		nullString(rec.FundingSource), rec.IsFinished, rec.IsRescinded,
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update work %d: %w", rec.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update of work %d: %w", rec.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("work %d not found", rec.ID)
	}
	return nil
}

// List retrieves works matching the given filters, newest first.
func (r *WorkRepository) List(ctx context.Context, filters secondary.WorkFilters) ([]*secondary.WorkRecord, error) {
	query := workSelect
	var (
		conds []string
		args  []any
	)
	if filters.Stage != "" {
		conds = append(conds, "s.name = ?")
		args = append(args, filters.Stage)
	}
	if filters.WorkType != "" {
		conds = append(conds, "t.name = ?")
		args = append(args, filters.WorkType)
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY w.id DESC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list works: %w", err)
	}
	defer rows.Close()

	var works []*secondary.WorkRecord
	for rows.Next() {
		rec, err := scanWork(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work: %w", err)
		}
		works = append(works, rec)
	}
	return works, rows.Err()
}

// Count returns the number of persisted works.
func (r *WorkRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM works").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count works: %w", err)
	}
	return n, nil
}

// scanWork reads one work row in workSelect column order.
func scanWork(scan func(...any) error) (*secondary.WorkRecord, error) {
	var (
		addressID     sql.NullInt64
		contractorID  sql.NullInt64
		amount        string
		startDate     sql.NullTime
		endDate       sql.NullTime
		imageURL      sql.NullString
		workforce     sql.NullInt64
		fundingSource sql.NullString
		createdAt     time.Time
		updatedAt     time.Time
	)

	rec := &secondary.WorkRecord{}
	err := scan(
		&rec.ID, &rec.EnvironmentID, &rec.StageID, &rec.WorkTypeID,
		&rec.ContractingTypeID, &rec.ResponsibleAreaID, &addressID, &contractorID,
		&rec.Name, &rec.Description, &amount, &startDate, &endDate,
		&rec.TermMonths, &rec.ProgressPercent, &rec.BidYear, &imageURL,
		&workforce, &rec.IsFeatured, &fundingSource, &rec.IsFinished,
		&rec.IsRescinded, &rec.EnvironmentName, &rec.StageName,
		&rec.WorkTypeName, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid stored amount %q: %w", amount, err)
	}
	rec.ContractAmount = dec

	if addressID.Valid {
		rec.AddressID = &addressID.Int64
	}
	if contractorID.Valid {
		rec.ContractorID = &contractorID.Int64
	}
	if startDate.Valid {
		t := startDate.Time
		rec.StartDate = &t
	}
	if endDate.Valid {
		t := endDate.Time
		rec.InitialEndDate = &t
	}
	if workforce.Valid {
		n := int(workforce.Int64)
		rec.WorkforceCount = &n
	}
	rec.PrimaryImageURL = imageURL.String
	rec.FundingSource = fundingSource.String
	rec.CreatedAt = createdAt.Format(time.RFC3339)
	rec.UpdatedAt = updatedAt.Format(time.RFC3339)

	return rec, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(dateLayout), Valid: true}
}
