package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func resetFlags() {
	cfgFile = ""
	verbose = false
	evalPrecision = 0
	evalRounding = ""
	evalOutput = ""
	evalBinds = nil
}

func TestLoadConfig(t *testing.T) {
	defer resetFlags()

	t.Run("no config file", func(t *testing.T) {
		resetFlags()
		cfg, err := loadConfig()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Precision != 0 || cfg.Rounding != "" || cfg.Output != "" {
			t.Errorf("expected zero config, got %+v", cfg)
		}
	})

	t.Run("yaml fields", func(t *testing.T) {
		resetFlags()
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := "precision: 4\nrounding: ceiling\noutput: string\n"
		if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
			t.Fatal(err)
		}
		cfgFile = path

		cfg, err := loadConfig()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Precision != 4 || cfg.Rounding != "ceiling" || cfg.Output != "string" {
			t.Errorf("got %+v", cfg)
		}
	})

	t.Run("missing file errors", func(t *testing.T) {
		resetFlags()
		cfgFile = filepath.Join(t.TempDir(), "nope.yaml")
		if _, err := loadConfig(); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestBuildOptionsPrecedence(t *testing.T) {
	defer resetFlags()

	t.Run("flags win over config", func(t *testing.T) {
		resetFlags()
		evalPrecision = 2
		evalRounding = "floor"

		opts, err := buildOptions(Config{Precision: 9, Rounding: "ceiling", Output: "string"})
		if err != nil {
			t.Fatal(err)
		}
		// precision, rounding and output produce one option each.
		if len(opts) != 3 {
			t.Errorf("got %d options, want 3", len(opts))
		}
	})

	t.Run("unknown rounding rejected", func(t *testing.T) {
		resetFlags()
		evalRounding = "sideways"
		if _, err := buildOptions(Config{}); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("malformed binding rejected", func(t *testing.T) {
		resetFlags()
		evalBinds = []string{"missing-equals"}
		if _, err := buildOptions(Config{}); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("bindings parsed", func(t *testing.T) {
		resetFlags()
		evalBinds = []string{"x=1 + 2"}
		opts, err := buildOptions(Config{})
		if err != nil {
			t.Fatal(err)
		}
		if len(opts) != 1 {
			t.Errorf("got %d options, want 1", len(opts))
		}
	})
}
