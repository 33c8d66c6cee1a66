package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	cfgFile string
	verbose bool
)

// Config holds the default decimal settings loaded from a YAML file.
// Flags set on the command line win over config file values.
type Config struct {
	Precision uint32 `yaml:"precision"`
	Rounding  string `yaml:"rounding"`
	Output    string `yaml:"output"`
}

var rootCmd = &cobra.Command{
	Use:   "decexpr",
	Short: "decexpr - decimal expression evaluator",
	Long: `decexpr evaluates infix arithmetic and comparison expressions over
arbitrary-precision decimals.

Numbers in the expression never touch binary floats: literals, string
operands and bound values all resolve to a decimal backend, under a
precision and rounding mode you control per invocation.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file with default precision/rounding/output (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig reads the YAML config file if one was named. A missing
// --config flag yields a zero Config, not an error.
func loadConfig() (Config, error) {
	var cfg Config
	if cfgFile == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(cfgFile)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", cfgFile, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
}
