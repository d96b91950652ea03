package db

// SchemaSQL is the complete schema for fresh installs.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Tests load it
// via GetSchemaSQL() instead of hardcoding CREATE TABLE statements, so a
// repository referencing a column that does not exist here fails immediately
// with "no such column" at test time.
//
// Lookup tables come first, works last: every foreign key points backwards.
const SchemaSQL = `
-- Lookup tables: identity is the name, deduplicated via get-or-create.
CREATE TABLE IF NOT EXISTS environments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS stages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS work_types (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS contracting_types (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS responsible_areas (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

-- Districts ("comunas"): name holds the canonical code, '0' means unknown.
CREATE TABLE IF NOT EXISTS districts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

-- Neighborhood names legitimately recur across districts, never within one.
CREATE TABLE IF NOT EXISTS neighborhoods (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	district_id INTEGER NOT NULL,
	FOREIGN KEY (district_id) REFERENCES districts(id),
	UNIQUE(name, district_id)
);

-- Contractors: identity for resolution is (company_name, tax_id).
CREATE TABLE IF NOT EXISTS contractors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	company_name TEXT NOT NULL,
	tax_id TEXT NOT NULL,
	contract_number TEXT,
	file_number TEXT,
	UNIQUE(company_name, tax_id)
);

CREATE TABLE IF NOT EXISTS addresses (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	location_text TEXT NOT NULL,
	neighborhood_id INTEGER NOT NULL,
	latitude REAL,
	longitude REAL,
	FOREIGN KEY (neighborhood_id) REFERENCES neighborhoods(id),
	UNIQUE(location_text, neighborhood_id)
);

-- Works: the root record. Lookup references are shared dimension rows;
-- deleting a work never cascades into them.
CREATE TABLE IF NOT EXISTS works (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	environment_id INTEGER NOT NULL,
	stage_id INTEGER NOT NULL,
	work_type_id INTEGER NOT NULL,
	contracting_type_id INTEGER NOT NULL,
	responsible_area_id INTEGER NOT NULL,
	address_id INTEGER,
	contractor_id INTEGER,
	name TEXT NOT NULL,
	description TEXT NOT NULL,
	contract_amount TEXT NOT NULL DEFAULT '0',
	start_date DATE,
	initial_end_date DATE,
	term_months INTEGER NOT NULL DEFAULT 0,
	progress_percent REAL NOT NULL DEFAULT 0,
	bid_year INTEGER NOT NULL DEFAULT 0,
	primary_image_url TEXT,
	workforce_count INTEGER,
	is_featured INTEGER NOT NULL DEFAULT 0,
	funding_source TEXT,
	is_finished INTEGER NOT NULL DEFAULT 0,
	is_rescinded INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (environment_id) REFERENCES environments(id),
	FOREIGN KEY (stage_id) REFERENCES stages(id),
	FOREIGN KEY (work_type_id) REFERENCES work_types(id),
	FOREIGN KEY (contracting_type_id) REFERENCES contracting_types(id),
	FOREIGN KEY (responsible_area_id) REFERENCES responsible_areas(id),
	FOREIGN KEY (address_id) REFERENCES addresses(id),
	FOREIGN KEY (contractor_id) REFERENCES contractors(id)
);

CREATE INDEX IF NOT EXISTS idx_works_stage ON works(stage_id);
CREATE INDEX IF NOT EXISTS idx_works_type ON works(work_type_id);
CREATE INDEX IF NOT EXISTS idx_neighborhoods_district ON neighborhoods(district_id);
`

// GetSchemaSQL returns the authoritative schema for tests and tooling.
func GetSchemaSQL() string {
	return SchemaSQL
}
