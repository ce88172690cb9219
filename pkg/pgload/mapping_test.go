package pgload_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgload/pkg/pgload"
)

func TestDefaultMappings(t *testing.T) {
	mappings := pgload.DefaultMappings()

	require.Len(t, mappings, 10)
	assert.Equal(t, pgload.Mapping{File: "cleaned_DimPatient.csv", Table: "dimpatient"}, mappings[0])
	assert.Equal(t, pgload.Mapping{File: "cleaned_FactTable.csv", Table: "facttable"}, mappings[9])
	require.NoError(t, pgload.ValidateMappings(mappings))
}

func TestDefaultMappings_ReturnsCopy(t *testing.T) {
	first := pgload.DefaultMappings()
	first[0].Table = "changed"

	assert.Equal(t, "dimpatient", pgload.DefaultMappings()[0].Table)
}

func TestValidateMappings(t *testing.T) {
	tests := []struct {
		name     string
		mappings []pgload.Mapping
		wantErr  bool
	}{
		{"empty", nil, true},
		{"single valid", []pgload.Mapping{{File: "a.csv", Table: "a"}}, false},
		{"schema qualified", []pgload.Mapping{{File: "a.csv", Table: "staging.a"}}, false},
		{"missing file", []pgload.Mapping{{File: "", Table: "a"}}, true},
		{"missing table", []pgload.Mapping{{File: "a.csv", Table: " "}}, true},
		{"path in file", []pgload.Mapping{{File: "../a.csv", Table: "a"}}, true},
		{"windows path in file", []pgload.Mapping{{File: `dir\a.csv`, Table: "a"}}, true},
		{"too many name parts", []pgload.Mapping{{File: "a.csv", Table: "db.staging.a"}}, true},
		{"empty name part", []pgload.Mapping{{File: "a.csv", Table: "staging."}}, true},
		{
			name: "duplicate file",
			mappings: []pgload.Mapping{
				{File: "a.csv", Table: "a"},
				{File: "a.csv", Table: "b"},
			},
			wantErr: true,
		},
		{
			name: "duplicate table differing in case",
			mappings: []pgload.Mapping{
				{File: "a.csv", Table: "dimdate"},
				{File: "b.csv", Table: "DimDate"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pgload.ValidateMappings(tt.mappings)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, pgload.ErrInvalidConfig), "expected ErrInvalidConfig, got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSplitTableName(t *testing.T) {
	parts, err := pgload.SplitTableName("staging.dimdate")
	require.NoError(t, err)
	assert.Equal(t, []string{"staging", "dimdate"}, parts)

	parts, err = pgload.SplitTableName("facttable")
	require.NoError(t, err)
	assert.Equal(t, []string{"facttable"}, parts)
}

func TestMapping_String(t *testing.T) {
	m := pgload.Mapping{File: "cleaned_DimDate.csv", Table: "dimdate"}
	assert.Equal(t, "cleaned_DimDate.csv -> dimdate", m.String())
}
