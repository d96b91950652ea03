package cleanse

// Source column names of the observatory CSV extract.
const (
	ColEnvironment     = "entorno"
	ColName            = "nombre"
	ColStage           = "etapa"
	ColWorkType        = "tipo"
	ColResponsibleArea = "area_responsable"
	ColDescription     = "descripcion"
	ColAmount          = "monto_contrato"
	ColStartDate       = "fecha_inicio"
	ColEndDate         = "fecha_fin_inicial"
	ColTermMonths      = "plazo_meses"
	ColProgress        = "porcentaje_avance"
	ColDistrict        = "comuna"
	ColNeighborhood    = "barrio"
	ColAddress         = "direccion"
	ColLatitude        = "lat"
	ColLongitude       = "lng"
	ColCompany         = "licitacion_oferta_empresa"
	ColContractingType = "contratacion_tipo"
	ColContractNumber  = "nro_contratacion"
	ColTaxID           = "cuit_contratista"
	ColFileNumber      = "expediente-numero"
	ColBidYear         = "licitacion_anio"
	ColWorkforce       = "mano_obra"
	ColFeatured        = "destacada"
	ColFunding         = "financiamiento"
	ColImage           = "imagen_1"
)

// Config parameterizes the cleaning pipeline. The substitution tables
// enumerate the malformed variants observed in the source extract; they are
// configuration, not derived decisions.
type Config struct {
	// DroppedColumns are removed before any other processing. Spreadsheet
	// "Unnamed: N" artifact columns are always removed regardless.
	DroppedColumns []string

	// DistrictVariants maps known malformed district strings to their
	// canonical single code. Unlisted malformed values stay unparsed and
	// end up missing rather than guessed.
	DistrictVariants map[string]string

	// NeighborhoodVariants maps known compound or garbled neighborhood
	// strings (already lower-cased, accent-stripped, space-collapsed) onto
	// one canonical neighborhood each. Lossy by design: the source data
	// conflates them.
	NeighborhoodVariants map[string]string

	// CorruptFileNumberTokens lists substrings identifying known garbled
	// records; any row whose file-number field contains one is dropped.
	CorruptFileNumberTokens []string
}

// DefaultConfig returns the tables covering the variants observed in the
// observatory extract.
func DefaultConfig() Config {
	return Config{
		DroppedColumns: []string{
			"imagen_2", "imagen_3", "imagen_4", "beneficiarios",
			"compromiso", "ba_elige", "link_interno", "pliego_descarga",
			"estudio_ambiental_descarga",
		},
		DistrictVariants: map[string]string{
			"4 y 1":             "4",
			"1 a 15":            "1",
			"14, 2 , 1":         "14",
			"1 y 4":             "1",
			"7 y 14":            "7",
			"7, 15 y 14":        "7",
			"7 y 9":             "9",
			"4, 8 y 9":          "8",
			"7, 8 y 9":          "7",
			".":                 "0",
			"8 y 12":            "8",
			"1, 2, 3, 4, 5, 6, 7, 8, 9 y 10": "1",
			"12 y 13":           "12",
			"10/11/12/13/14/15": "10",
		},
		NeighborhoodVariants: map[string]string{
			".":                         "",
			"villa 6 - barrio cildanez": "villa 6",
			// latin-1 artifact for nunez
			"nua±ez":                     "nunez",
			"nunez y saavedra":           "nunez",
			"cuenca matanza- riachuelo":  "cuenca matanza",
			"barracas y nueva pompeya":   "barracas",
			"la boca y san telmo":        "la boca",
			"recoleta, palermo y retiro": "recoleta",
			"san nicolas, monserrat, san telmo y la boca": "san nicolas",
			"p. chacabuco/palermo":                        "parque chacabuco",
			"p. chacabuco/agronomia/ palermo":             "parque chacabuco",
			"flores, floresta":                            "flores",
			"mataderos, villa riachuelo, barracas, nueva pompeya, villa lugano y la boca":                          "mataderos",
			"villa soldati, flores, floresta, parque avellaneda, mataderos, villa lugano, villa riachuelo, villa lugano": "villa soldati",
			"villa lugano, parque avellaneda y flores": "villa lugano",
			"villa soldati y saavedra":                 "villa soldati",
			"villa soldati, flores, floresta, parque avellaneda, mataderos, villa lugano, villa riachuelo, villa lugano, liniers, parque chacabuco, caballito, boedo, san cristobal, constitucion, boca, barracas, parque patricios y nueva pompeya": "villa soldati",
			"yerbal - villa luro - velez sarfield floresta - monte castro - villa del parque - villa santa rita - paternal - villa crespo - villa urquiza":                                                                                          "villa urquiza",
		},
		CorruptFileNumberTokens: []string{
			"EX-2016- 25.688.941",
		},
	}
}

// Defaults for text fields the storage layer requires to be non-null.
const (
	DefaultEnvironment     = "SIN ENTORNO"
	DefaultName            = "SIN NOMBRE"
	DefaultStage           = "SIN ETAPA"
	DefaultWorkType        = "SIN TIPO"
	DefaultResponsibleArea = "SIN AREA"
	DefaultContractingType = "SIN CONTRATACION"
	DefaultNeighborhood    = "sin barrio"
	DefaultBlank           = " "
)
