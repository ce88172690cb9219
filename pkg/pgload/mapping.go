package pgload

import (
	"errors"
	"fmt"
	"strings"
)

// Mapping pairs a CSV file name with the table it is loaded into.
type Mapping struct {
	// File is a plain file name, resolved against the load directory.
	File string `yaml:"file"`

	// Table is the destination table, optionally schema-qualified ("staging.dimdate").
	Table string `yaml:"table"`
}

func (m Mapping) String() string {
	return m.File + " -> " + m.Table
}

// DefaultMappings returns the star-schema mapping loaded when no other mapping is configured.
// Dimension tables come first so the fact table is loaded last.
func DefaultMappings() []Mapping {
	return []Mapping{
		{File: "cleaned_DimPatient.csv", Table: "dimpatient"},
		{File: "cleaned_DimPhysician.csv", Table: "dimphysician"},
		{File: "cleaned_DimSpeciality.csv", Table: "dimspeciality"},
		{File: "cleaned_DimHospital.csv", Table: "dimhospital"},
		{File: "cleaned_DimPayer.csv", Table: "dimpayer"},
		{File: "cleaned_DimCptCode.csv", Table: "dimcptcode"},
		{File: "cleaned_DimDiagnosisCode.csv", Table: "dimdiagnosiscode"},
		{File: "cleaned_DimDate.csv", Table: "dimdate"},
		{File: "cleaned_DimTransaction.csv", Table: "dimtransaction"},
		{File: "cleaned_FactTable.csv", Table: "facttable"},
	}
}

// ValidateMappings checks that mappings are non-empty, well formed, and that no file or
// table appears twice. Table names are compared case-insensitively because unquoted
// identifiers fold to lower case in PostgreSQL.
func ValidateMappings(mappings []Mapping) error {
	if len(mappings) == 0 {
		return fmt.Errorf("at least one file-to-table mapping is required: %w", ErrInvalidConfig)
	}

	var errs []error
	files := make(map[string]int, len(mappings))
	tables := make(map[string]int, len(mappings))

	for i, m := range mappings {
		file := strings.TrimSpace(m.File)
		table := strings.TrimSpace(m.Table)

		if file == "" {
			errs = append(errs, fmt.Errorf("mapping %d: file is required: %w", i+1, ErrInvalidConfig))
		} else if strings.ContainsAny(file, `/\`) {
			errs = append(errs, fmt.Errorf("mapping %d: file %q must be a plain file name: %w", i+1, file, ErrInvalidConfig))
		} else if prev, ok := files[file]; ok {
			errs = append(errs, fmt.Errorf("mapping %d: file %q already mapped by entry %d: %w", i+1, file, prev, ErrInvalidConfig))
		} else {
			files[file] = i + 1
		}

		if table == "" {
			errs = append(errs, fmt.Errorf("mapping %d: table is required: %w", i+1, ErrInvalidConfig))
			continue
		}
		if _, err := SplitTableName(table); err != nil {
			errs = append(errs, fmt.Errorf("mapping %d: %w", i+1, err))
			continue
		}
		key := strings.ToLower(table)
		if prev, ok := tables[key]; ok {
			errs = append(errs, fmt.Errorf("mapping %d: table %q already loaded by entry %d: %w", i+1, table, prev, ErrInvalidConfig))
			continue
		}
		tables[key] = i + 1
	}

	return errors.Join(errs...)
}

// SplitTableName splits "schema.table" into its parts. At most one dot is allowed.
func SplitTableName(table string) ([]string, error) {
	parts := strings.Split(strings.TrimSpace(table), ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("table %q has too many name parts: %w", table, ErrInvalidConfig)
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return nil, fmt.Errorf("table %q has an empty name part: %w", table, ErrInvalidConfig)
		}
	}
	return parts, nil
}
