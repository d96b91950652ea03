package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/example/obras/internal/core/cleanse"
)

// cleanColumns is the fixed column set of the cleaned checkpoint export.
var cleanColumns = []string{
	cleanse.ColEnvironment,
	cleanse.ColName,
	cleanse.ColStage,
	cleanse.ColWorkType,
	cleanse.ColResponsibleArea,
	cleanse.ColDescription,
	cleanse.ColAmount,
	cleanse.ColStartDate,
	cleanse.ColEndDate,
	cleanse.ColTermMonths,
	cleanse.ColProgress,
	cleanse.ColDistrict,
	cleanse.ColNeighborhood,
	cleanse.ColAddress,
	cleanse.ColLatitude,
	cleanse.ColLongitude,
	cleanse.ColCompany,
	cleanse.ColContractingType,
	cleanse.ColContractNumber,
	cleanse.ColTaxID,
	cleanse.ColFileNumber,
	cleanse.ColBidYear,
	cleanse.ColWorkforce,
	cleanse.ColFeatured,
	cleanse.ColFunding,
	cleanse.ColImage,
}

// WriteFile writes the cleaned records to path as UTF-8 CSV.
func WriteFile(path string, records []cleanse.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create cleaned csv: %w", err)
	}
	defer file.Close()

	if err := Write(file, records); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Write emits the cleaned records to w, one row per record, semicolons
// replaced by the standard comma delimiter.
func Write(w io.Writer, records []cleanse.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(cleanColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range records {
		if err := cw.Write(recordRow(rec)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func recordRow(rec cleanse.Record) []string {
	return []string{
		rec.Environment,
		rec.Name,
		rec.Stage,
		rec.WorkType,
		rec.ResponsibleArea,
		rec.Description,
		rec.ContractAmount.String(),
		formatDate(rec.StartDate),
		formatDate(rec.InitialEndDate),
		strconv.Itoa(rec.TermMonths),
		strconv.FormatFloat(rec.ProgressPercent, 'f', -1, 64),
		strconv.Itoa(rec.District),
		rec.Neighborhood,
		rec.Address,
		formatCoord(rec.Latitude),
		formatCoord(rec.Longitude),
		rec.Company,
		rec.ContractingType,
		rec.ContractNumber,
		rec.TaxID,
		rec.FileNumber,
		strconv.Itoa(rec.BidYear),
		strconv.Itoa(rec.Workforce),
		strconv.FormatBool(rec.Featured),
		rec.FundingSource,
		rec.PrimaryImageURL,
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatCoord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
