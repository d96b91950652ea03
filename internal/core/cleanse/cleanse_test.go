package cleanse

import (
	"testing"
	"time"
)

// minimalHeader covers the columns the pipeline maps; tests build rows
// positionally against it.
var minimalHeader = []string{
	ColEnvironment, ColName, ColStage, ColWorkType, ColResponsibleArea,
	ColDescription, ColAmount, ColStartDate, ColEndDate, ColTermMonths,
	ColProgress, ColDistrict, ColNeighborhood, ColAddress, ColLatitude,
	ColLongitude, ColCompany, ColContractingType, ColContractNumber,
	ColTaxID, ColFileNumber, ColBidYear, ColWorkforce, ColFeatured,
	ColFunding, ColImage,
}

func makeRow(overrides map[string]string) []string {
	base := map[string]string{
		ColEnvironment:     "Urbano",
		ColName:            "Plaza Constitución",
		ColStage:           "En Ejecución",
		ColWorkType:        "Espacio Público",
		ColResponsibleArea: "Ministerio de Espacio Público",
		ColDescription:     "Puesta en valor",
		ColAmount:          "$ 1.234.567,89",
		ColStartDate:       "2019-03-15",
		ColEndDate:         "2020/03/15",
		ColTermMonths:      "11.5",
		ColProgress:        "45%",
		ColDistrict:        "4",
		ColNeighborhood:    "  Nueva  Pompeya ",
		ColAddress:         "Av. Sáenz 1260",
		ColLatitude:        "-34,6458",
		ColLongitude:       "-58,4109",
		ColCompany:         "Construcciones SA",
		ColContractingType: "Licitación Pública",
		ColContractNumber:  "123/2019",
		ColTaxID:           "30-1234-5 ; 30-9876-1",
		ColFileNumber:      "EX-2019-123",
		ColBidYear:         "2019",
		ColWorkforce:       "40",
		ColFeatured:        "SI",
		ColFunding:         "Nación",
		ColImage:           "https://example.org/obra.jpg",
	}
	for k, v := range overrides {
		base[k] = v
	}
	row := make([]string, len(minimalHeader))
	for i, col := range minimalHeader {
		row[i] = base[col]
	}
	return row
}

func TestCleanTypicalRow(t *testing.T) {
	res := Clean(Table{Header: minimalHeader, Rows: [][]string{makeRow(nil)}}, DefaultConfig())

	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}
	rec := res.Records[0]

	if rec.ContractAmount.String() != "1234567.89" {
		t.Errorf("ContractAmount = %s, want 1234567.89", rec.ContractAmount)
	}
	if rec.Name != "Plaza Constitucion" {
		t.Errorf("Name = %q, want accent-stripped name", rec.Name)
	}
	if rec.Neighborhood != "nueva pompeya" {
		t.Errorf("Neighborhood = %q, want %q", rec.Neighborhood, "nueva pompeya")
	}
	if rec.Address != "av. saenz 1260" {
		t.Errorf("Address = %q, want %q", rec.Address, "av. saenz 1260")
	}
	if rec.TermMonths != 12 {
		t.Errorf("TermMonths = %d, want 12 (ceiling of 11.5)", rec.TermMonths)
	}
	if rec.ProgressPercent != 45 {
		t.Errorf("ProgressPercent = %v, want 45", rec.ProgressPercent)
	}
	if rec.District != 4 {
		t.Errorf("District = %d, want 4", rec.District)
	}
	if rec.TaxID != "30-1234-5;30-9876-1" {
		t.Errorf("TaxID = %q, want normalized separators", rec.TaxID)
	}
	if !rec.Featured {
		t.Error("Featured = false, want true for SI")
	}
	if rec.StartDate == nil || !rec.StartDate.Equal(time.Date(2019, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("StartDate = %v, want 2019-03-15", rec.StartDate)
	}
	if rec.InitialEndDate == nil {
		t.Error("InitialEndDate = nil, want parsed slash-layout date")
	}
	if rec.Latitude == nil || *rec.Latitude != -34.6458 {
		t.Errorf("Latitude = %v, want -34.6458", rec.Latitude)
	}
}

func TestCleanDropsDuplicateRows(t *testing.T) {
	row := makeRow(nil)
	dup := make([]string, len(row))
	copy(dup, row)
	other := makeRow(map[string]string{ColName: "Otra Obra"})

	res := Clean(Table{Header: minimalHeader, Rows: [][]string{row, dup, other}}, DefaultConfig())

	if len(res.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(res.Records))
	}
	if res.DuplicatesDropped != 1 {
		t.Errorf("DuplicatesDropped = %d, want 1", res.DuplicatesDropped)
	}
	if res.RowsIn != 3 {
		t.Errorf("RowsIn = %d, want 3", res.RowsIn)
	}
}

func TestCleanFiltersCorruptFileNumber(t *testing.T) {
	corrupt := makeRow(map[string]string{ColFileNumber: "EX-2016- 25.688.941 MGEYA-DGIURB"})

	res := Clean(Table{Header: minimalHeader, Rows: [][]string{makeRow(nil), corrupt}}, DefaultConfig())

	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}
	if res.CorruptDropped != 1 {
		t.Errorf("CorruptDropped = %d, want 1", res.CorruptDropped)
	}
}

func TestCleanMandatoryDefaults(t *testing.T) {
	blank := makeRow(map[string]string{
		ColEnvironment:     "",
		ColName:            "nan",
		ColStage:           "",
		ColWorkType:        "",
		ColResponsibleArea: "",
		ColDescription:     "",
		ColNeighborhood:    "",
		ColAddress:         "",
		ColCompany:         "",
		ColContractingType: "",
		ColContractNumber:  "",
		ColTaxID:           "",
	})

	res := Clean(Table{Header: minimalHeader, Rows: [][]string{blank}}, DefaultConfig())
	rec := res.Records[0]

	if rec.Environment != DefaultEnvironment {
		t.Errorf("Environment = %q, want %q", rec.Environment, DefaultEnvironment)
	}
	if rec.Name != DefaultName {
		t.Errorf("Name = %q, want %q", rec.Name, DefaultName)
	}
	if rec.Neighborhood != DefaultNeighborhood {
		t.Errorf("Neighborhood = %q, want %q", rec.Neighborhood, DefaultNeighborhood)
	}
	if rec.Description != DefaultBlank {
		t.Errorf("Description = %q, want single space", rec.Description)
	}
	if rec.TaxID != DefaultBlank {
		t.Errorf("TaxID = %q, want single space", rec.TaxID)
	}
}

func TestCleanDistrictVariants(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"7, 8 y 9", 7},
		{"10/11/12/13/14/15", 10},
		{"1 a 15", 1},
		{".", 0},
		{"", 0},
		{"2 y 3", 0}, // unlisted compound: missing, defaulted to 0
	}

	for _, tt := range tests {
		res := Clean(Table{
			Header: minimalHeader,
			Rows:   [][]string{makeRow(map[string]string{ColDistrict: tt.raw})},
		}, DefaultConfig())
		if got := res.Records[0].District; got != tt.want {
			t.Errorf("district %q = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestCleanNeighborhoodVariants(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Barracas y Nueva Pompeya", "barracas"},
		{"La Boca y San Telmo", "la boca"},
		{"Recoleta, Palermo y Retiro", "recoleta"},
		{"Flores,  Floresta", "flores"}, // whitespace collapsed before lookup
		{".", DefaultNeighborhood},
	}

	for _, tt := range tests {
		res := Clean(Table{
			Header: minimalHeader,
			Rows:   [][]string{makeRow(map[string]string{ColNeighborhood: tt.raw})},
		}, DefaultConfig())
		if got := res.Records[0].Neighborhood; got != tt.want {
			t.Errorf("neighborhood %q = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCleanDropsArtifactColumns(t *testing.T) {
	header := append([]string{}, minimalHeader...)
	header = append(header, "Unnamed: 26", "beneficiarios")
	row := append(makeRow(nil), "garbage", "texto libre")

	res := Clean(Table{Header: header, Rows: [][]string{row}}, DefaultConfig())
	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}
	// The dropped columns must not influence duplicate detection either:
	// two rows differing only in artifact columns are duplicates.
	row2 := append(makeRow(nil), "other", "different")
	res = Clean(Table{Header: header, Rows: [][]string{row, row2}}, DefaultConfig())
	if res.DuplicatesDropped != 1 {
		t.Errorf("DuplicatesDropped = %d, want 1 after artifact columns removed", res.DuplicatesDropped)
	}
}
