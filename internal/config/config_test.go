package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/idelchi/splinch/internal/config"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	flags := pflag.NewFlagSet("splinch", pflag.ContinueOnError)
	flags.StringP("input", "i", "", "")
	flags.BoolP("verify", "v", false, "")
	flags.BoolP("combine", "c", false, "")
	flags.BoolP("secure-delete", "s", false, "")
	flags.IntP("passes", "p", 1, "")
	flags.BoolP("quiet", "q", false, "")
	flags.Bool("stats", false, "")
	flags.Bool("debug", false, "")
	flags.String("config", "", "")

	if err := flags.Parse(args); err != nil {
		t.Fatalf("parsing flags %v: %v", args, err)
	}

	return flags
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.Config
		wantErr string
	}{
		{"split", config.Config{Input: "f", Passes: 1}, ""},
		{"split with everything", config.Config{Input: "f", Verify: true, SecureDelete: true, Passes: 7}, ""},
		{"combine", config.Config{Input: "f.xor1", Combine: true, Passes: 1}, ""},
		{"missing input", config.Config{Passes: 1}, "--input is required"},
		{"zero passes", config.Config{Input: "f", Passes: 0}, "--passes must be at least 1"},
		{"combine with verify", config.Config{Input: "f", Combine: true, Verify: true, Passes: 1}, "--verify cannot be used with --combine"},
		{
			"combine with secure delete",
			config.Config{Input: "f", Combine: true, SecureDelete: true, Passes: 1},
			"--secure-delete cannot be used with --combine",
		},
		{"combine with passes", config.Config{Input: "f", Combine: true, Passes: 3}, "--passes cannot be used with --combine"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.cfg.Validate()

			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error: %v", err)
				}

				return
			}

			if !errors.Is(err, config.ErrUsage) {
				t.Fatalf("Validate() error = %v, want a usage error", err)
			}

			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadFromFlags(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(viper.New(), newFlags(t, "-i", "data.bin", "-v", "-s", "-p", "3"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	want := config.Config{Input: "data.bin", Verify: true, SecureDelete: true, Passes: 3}
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "splinch.jsonc")

	content := `{
	// defaults for the backup job
	"input": "from-file.bin",
	"passes": 5,
	"verify": true, /* trailing comma below is fine */
}`

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	t.Setenv("SPLINCH_PASSES", "4")
	t.Setenv("SPLINCH_SECURE_DELETE", "true")

	cfg, err := config.Load(viper.New(), newFlags(t, "--config", path, "-i", "from-flag.bin"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Input != "from-flag.bin" {
		t.Errorf("Input = %q, want the flag value", cfg.Input)
	}

	if cfg.Passes != 4 {
		t.Errorf("Passes = %d, want the environment value 4", cfg.Passes)
	}

	if !cfg.Verify {
		t.Error("Verify = false, want the config file value true")
	}

	if !cfg.SecureDelete {
		t.Error("SecureDelete = false, want the environment value true")
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.jsonc")

	if _, err := config.Load(viper.New(), newFlags(t, "--config", missing)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load error = %v, want %v", err, os.ErrNotExist)
	}
}
