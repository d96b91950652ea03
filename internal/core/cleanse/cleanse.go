// Package cleanse turns the raw observatory table into cleaned, typed
// records ready for loading. The pipeline drops artifact and irrelevant
// columns, removes exact duplicate rows, normalizes every cell, applies the
// configured substitution tables, filters known-corrupt rows, and fills the
// mandatory-field defaults the storage layer requires.
package cleanse

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/obras/internal/core/normalize"
)

// Table is the raw tabular batch as extracted from the CSV: a header row and
// untyped string cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// Record is one cleaned row with canonical typed values.
type Record struct {
	Environment     string
	Name            string
	Stage           string
	WorkType        string
	ContractingType string
	ResponsibleArea string
	Description     string
	ContractAmount  decimal.Decimal
	StartDate       *time.Time
	InitialEndDate  *time.Time
	TermMonths      int
	ProgressPercent float64
	District        int
	Neighborhood    string
	Address         string
	Latitude        *float64
	Longitude       *float64
	Company         string
	TaxID           string
	ContractNumber  string
	FileNumber      string
	BidYear         int
	Workforce       int
	Featured        bool
	FundingSource   string
	PrimaryImageURL string
}

// Result is the cleaned batch plus the accounting the final report needs.
type Result struct {
	Records           []Record
	RowsIn            int
	DuplicatesDropped int
	CorruptDropped    int
}

// Clean runs the full pipeline over the raw table.
func Clean(t Table, cfg Config) Result {
	t = dropColumns(t, cfg.DroppedColumns)

	res := Result{RowsIn: len(t.Rows)}
	cols := columnIndex(t.Header)

	seen := make(map[string]bool, len(t.Rows))
	for _, row := range t.Rows {
		key := strings.Join(row, "\x1f")
		if seen[key] {
			res.DuplicatesDropped++
			continue
		}
		seen[key] = true

		if isCorrupt(rawField(row, cols, ColFileNumber), cfg.CorruptFileNumberTokens) {
			res.CorruptDropped++
			continue
		}

		res.Records = append(res.Records, cleanRow(row, cols, cfg))
	}

	return res
}

// dropColumns removes spreadsheet "Unnamed" artifact columns plus the
// configured irrelevant columns.
func dropColumns(t Table, dropped []string) Table {
	droppedSet := make(map[string]bool, len(dropped))
	for _, name := range dropped {
		droppedSet[name] = true
	}

	keep := make([]int, 0, len(t.Header))
	header := make([]string, 0, len(t.Header))
	for i, name := range t.Header {
		if strings.HasPrefix(name, "Unnamed") || droppedSet[name] {
			continue
		}
		keep = append(keep, i)
		header = append(header, name)
	}

	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		out := make([]string, 0, len(keep))
		for _, i := range keep {
			if i < len(row) {
				out = append(out, row[i])
			} else {
				out = append(out, "")
			}
		}
		rows[r] = out
	}

	return Table{Header: header, Rows: rows}
}

func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	return idx
}

func rawField(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func cell(row []string, cols map[string]int, name string) normalize.Cell {
	return normalize.FromRaw(rawField(row, cols, name))
}

func isCorrupt(fileNumber string, tokens []string) bool {
	for _, tok := range tokens {
		if tok != "" && strings.Contains(fileNumber, tok) {
			return true
		}
	}
	return false
}

func cleanRow(row []string, cols map[string]int, cfg Config) Record {
	get := func(name string) normalize.Cell { return cell(row, cols, name) }

	rec := Record{
		Environment:     normalize.PlainText(get(ColEnvironment)),
		Name:            normalize.PlainText(get(ColName)),
		Stage:           normalize.PlainText(get(ColStage)),
		WorkType:        normalize.PlainText(get(ColWorkType)),
		ContractingType: normalize.PlainText(get(ColContractingType)),
		ResponsibleArea: normalize.PlainText(get(ColResponsibleArea)),
		Description:     normalize.PlainText(get(ColDescription)),
		ContractAmount:  normalize.Currency(get(ColAmount)),
		ProgressPercent: normalize.Percent(get(ColProgress)),
		Address:         normalize.PlaceText(get(ColAddress)),
		Company:         normalize.PlainText(get(ColCompany)),
		TaxID:           normalize.DelimitedList(get(ColTaxID)),
		ContractNumber:  normalize.PlainText(get(ColContractNumber)),
		FileNumber:      normalize.DelimitedList(get(ColFileNumber)),
		Featured:        normalize.Affirmative(get(ColFeatured)),
		FundingSource:   normalize.PlainText(get(ColFunding)),
		PrimaryImageURL: strings.TrimSpace(rawField(row, cols, ColImage)),
	}

	if t, ok := normalize.CalendarDate(get(ColStartDate)); ok {
		rec.StartDate = &t
	}
	if t, ok := normalize.CalendarDate(get(ColEndDate)); ok {
		rec.InitialEndDate = &t
	}
	// Missing term, year and workforce default to 0: the columns are
	// NOT NULL in the store.
	rec.TermMonths, _ = normalize.Integer(get(ColTermMonths))
	rec.BidYear, _ = normalize.Integer(get(ColBidYear))
	rec.Workforce, _ = normalize.Integer(get(ColWorkforce))

	// District substitution must complete before the loader can resolve the
	// neighborhood under it. Missing districts become code 0.
	rec.District, _ = normalize.DistrictCode(get(ColDistrict), cfg.DistrictVariants)

	neighborhood := normalize.PlaceText(get(ColNeighborhood))
	if canonical, ok := cfg.NeighborhoodVariants[neighborhood]; ok {
		neighborhood = canonical
	}
	rec.Neighborhood = neighborhood

	if v, ok := normalize.Coordinate(get(ColLatitude)); ok {
		rec.Latitude = &v
	}
	if v, ok := normalize.Coordinate(get(ColLongitude)); ok {
		rec.Longitude = &v
	}

	applyDefaults(&rec)
	return rec
}

// applyDefaults fills the fields the storage layer constrains to non-null.
func applyDefaults(rec *Record) {
	fill := func(field *string, def string) {
		if strings.TrimSpace(*field) == "" {
			*field = def
		}
	}

	fill(&rec.Environment, DefaultEnvironment)
	fill(&rec.Name, DefaultName)
	fill(&rec.Stage, DefaultStage)
	fill(&rec.WorkType, DefaultWorkType)
	fill(&rec.ContractingType, DefaultContractingType)
	fill(&rec.ResponsibleArea, DefaultResponsibleArea)
	fill(&rec.Description, DefaultBlank)
	fill(&rec.Neighborhood, DefaultNeighborhood)
	fill(&rec.Address, DefaultBlank)
	fill(&rec.Company, DefaultBlank)
	fill(&rec.ContractNumber, DefaultBlank)
	fill(&rec.TaxID, DefaultBlank)
}
