package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/example/obras/internal/ports/secondary"
)

// ReportRepository implements secondary.ReportRepository with SQLite.
// Amount rollups fold decimal strings in Go rather than SUM() over floats,
// keeping the exact arithmetic the amounts were stored with.
type ReportRepository struct {
	q DBTX
}

// NewReportRepository creates a report repository over the given connection.
func NewReportRepository(q DBTX) *ReportRepository {
	return &ReportRepository{q: q}
}

// AggregateByType returns count and total amount grouped by work type.
func (r *ReportRepository) AggregateByType(ctx context.Context) ([]secondary.TypeAggregate, error) {
	rows, err := r.q.QueryContext(ctx, `
SELECT t.name, w.contract_amount
FROM works w
JOIN work_types t ON t.id = w.work_type_id
ORDER BY t.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by type: %w", err)
	}
	defer rows.Close()

	var (
		order  []string
		counts = make(map[string]int)
		totals = make(map[string]decimal.Decimal)
	)
	for rows.Next() {
		var typeName, amount string
		if err := rows.Scan(&typeName, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan type aggregate: %w", err)
		}
		dec, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid stored amount %q: %w", amount, err)
		}
		if _, seen := counts[typeName]; !seen {
			order = append(order, typeName)
		}
		counts[typeName]++
		totals[typeName] = totals[typeName].Add(dec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	aggs := make([]secondary.TypeAggregate, len(order))
	for i, name := range order {
		aggs[i] = secondary.TypeAggregate{
			WorkType:    name,
			Count:       counts[name],
			TotalAmount: totals[name],
		}
	}
	return aggs, nil
}

// CountByStage returns work counts grouped by stage.
func (r *ReportRepository) CountByStage(ctx context.Context) ([]secondary.StageCount, error) {
	rows, err := r.q.QueryContext(ctx, `
SELECT s.name, COUNT(*)
FROM works w
JOIN stages s ON s.id = w.stage_id
GROUP BY s.name
ORDER BY s.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to count by stage: %w", err)
	}
	defer rows.Close()

	var counts []secondary.StageCount
	for rows.Next() {
		var sc secondary.StageCount
		if err := rows.Scan(&sc.Stage, &sc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan stage count: %w", err)
		}
		counts = append(counts, sc)
	}
	return counts, rows.Err()
}

// NeighborhoodsInDistricts lists neighborhoods within the named districts.
func (r *ReportRepository) NeighborhoodsInDistricts(ctx context.Context, districts []string) ([]secondary.NeighborhoodInfo, error) {
	if len(districts) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?, ", len(districts)-1) + "?"
	args := make([]any, len(districts))
	for i, d := range districts {
		args[i] = d
	}

	rows, err := r.q.QueryContext(ctx, `
SELECT n.name, d.name
FROM neighborhoods n
JOIN districts d ON d.id = n.district_id
WHERE d.name IN (`+placeholders+`)
ORDER BY d.name ASC, n.name ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list neighborhoods: %w", err)
	}
	defer rows.Close()

	var infos []secondary.NeighborhoodInfo
	for rows.Next() {
		var info secondary.NeighborhoodInfo
		if err := rows.Scan(&info.Name, &info.District); err != nil {
			return nil, fmt.Errorf("failed to scan neighborhood: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// FinishedWorksOverTerm lists finished works whose term exceeds months.
func (r *ReportRepository) FinishedWorksOverTerm(ctx context.Context, months int) ([]secondary.FinishedWork, error) {
	rows, err := r.q.QueryContext(ctx, `
SELECT id, name, term_months
FROM works
WHERE is_finished = 1 AND term_months > ?
ORDER BY term_months DESC, id ASC`, months)
	if err != nil {
		return nil, fmt.Errorf("failed to list finished works: %w", err)
	}
	defer rows.Close()

	var works []secondary.FinishedWork
	for rows.Next() {
		var fw secondary.FinishedWork
		if err := rows.Scan(&fw.ID, &fw.Name, &fw.TermMonths); err != nil {
			return nil, fmt.Errorf("failed to scan finished work: %w", err)
		}
		works = append(works, fw)
	}
	return works, rows.Err()
}

// TotalContractAmount sums the contract amount over all works.
func (r *ReportRepository) TotalContractAmount(ctx context.Context) (decimal.Decimal, error) {
	rows, err := r.q.QueryContext(ctx, "SELECT contract_amount FROM works")
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum contract amounts: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var amount string
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, fmt.Errorf("failed to scan amount: %w", err)
		}
		dec, err := decimal.NewFromString(amount)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid stored amount %q: %w", amount, err)
		}
		total = total.Add(dec)
	}
	return total, rows.Err()
}

// CountWorks returns the total number of works.
func (r *ReportRepository) CountWorks(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM works").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count works: %w", err)
	}
	return n, nil
}
