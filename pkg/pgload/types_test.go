package pgload_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vvka-141/pgload/pkg/pgload"
)

func validConfig() pgload.LoadConfig {
	return pgload.LoadConfig{
		Directory:  "data/outputs",
		Mappings:   pgload.DefaultMappings(),
		Connection: &pgload.ConnectionConfig{Host: "localhost", Port: 5432, Database: "Health_DataBase"},
		TxMode:     pgload.TxModeSingle,
		Timeout:    time.Minute,
	}
}

func TestLoadConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*pgload.LoadConfig)
		wantErr bool
	}{
		{"valid config", func(*pgload.LoadConfig) {}, false},
		{"empty tx mode defaults", func(c *pgload.LoadConfig) { c.TxMode = "" }, false},
		{"missing directory", func(c *pgload.LoadConfig) { c.Directory = "" }, true},
		{"missing connection", func(c *pgload.LoadConfig) { c.Connection = nil }, true},
		{"missing database", func(c *pgload.LoadConfig) { c.Connection.Database = "" }, true},
		{"no mappings", func(c *pgload.LoadConfig) { c.Mappings = nil }, true},
		{"unknown tx mode", func(c *pgload.LoadConfig) { c.TxMode = "sometimes" }, true},
		{"negative timeout", func(c *pgload.LoadConfig) { c.Timeout = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error, got nil")
				}
				if !errors.Is(err, pgload.ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := pgload.LoadConfig{TxMode: "bogus", Timeout: -1}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}

	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		t.Fatalf("expected joined error, got %T", err)
	}
	if got := len(joined.Unwrap()); got != 5 {
		t.Errorf("expected 5 validation errors, got %d: %v", got, err)
	}
}

func TestParseTxMode(t *testing.T) {
	tests := []struct {
		in      string
		want    pgload.TxMode
		wantErr bool
	}{
		{"", pgload.TxModeSingle, false},
		{"single", pgload.TxModeSingle, false},
		{"SINGLE", pgload.TxModeSingle, false},
		{"per-file", pgload.TxModePerFile, false},
		{"file", pgload.TxModePerFile, false},
		{"atomic", pgload.TxModeAtomic, false},
		{"nested", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := pgload.ParseTxMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTxMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTxMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAuthMethod_String(t *testing.T) {
	tests := []struct {
		method pgload.AuthMethod
		want   string
	}{
		{pgload.AuthMethodStandard, "Standard"},
		{pgload.AuthMethodAWSIAM, "AWS IAM"},
		{pgload.AuthMethodGoogleIAM, "Google IAM"},
		{pgload.AuthMethodAzureEntraID, "Azure Entra ID"},
		{pgload.AuthMethod(99), "Unknown(99)"},
	}
	for _, tt := range tests {
		if got := tt.method.String(); got != tt.want {
			t.Errorf("AuthMethod(%d).String() = %q, want %q", tt.method, got, tt.want)
		}
	}
	if pgload.AuthMethod(99).IsValid() {
		t.Error("AuthMethod(99) should not be valid")
	}
}
