package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandrolain/decexpr"
	"github.com/sandrolain/decexpr/pkg/decimal"
	"github.com/sandrolain/decexpr/pkg/evaluator"
)

var (
	evalPrecision uint32
	evalRounding  string
	evalOutput    string
	evalBinds     []string
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate an expression",
	Long: `Evaluate a decimal expression and print the result.

Bindings are passed as name=expression pairs; the bound expression is
evaluated once, under the same decimal settings, before the main
expression runs.

Examples:
  decexpr eval '21.0 + "21.0"'
  decexpr eval --precision 2 '1/3'
  decexpr eval --as integer '21.0 * 2'
  decexpr eval --bind x=0.1 --bind y=0.2 'x + y == 0.3'`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().Uint32Var(&evalPrecision, "precision", 0, "significant digits (default 28)")
	evalCmd.Flags().StringVar(&evalRounding, "rounding", "", "rounding mode (down, half_up, half_even, ceiling, floor, half_down, up)")
	evalCmd.Flags().StringVar(&evalOutput, "as", "", "result shape (decimal, float, integer, string, scientific, xsd, raw)")
	evalCmd.Flags().StringArrayVar(&evalBinds, "bind", nil, "binding as name=expression (repeatable)")
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("config", err)
		return err
	}

	opts, err := buildOptions(cfg)
	if err != nil {
		printError("options", err)
		return err
	}

	result, err := decexpr.EvalString(args[0], opts...)
	if err != nil {
		printError("eval", err)
		return err
	}

	fmt.Println(formatResult(result))
	return nil
}

func buildOptions(cfg Config) ([]evaluator.EvalOption, error) {
	var opts []evaluator.EvalOption

	precision := cfg.Precision
	if evalPrecision != 0 {
		precision = evalPrecision
	}
	if precision != 0 {
		opts = append(opts, decexpr.WithPrecision(precision))
	}

	rounding := cfg.Rounding
	if evalRounding != "" {
		rounding = evalRounding
	}
	if rounding != "" {
		if _, ok := decimal.RounderFromName(rounding); !ok {
			return nil, fmt.Errorf("unknown rounding strategy %q", rounding)
		}
		opts = append(opts, decexpr.WithRounding(rounding))
	}

	output := cfg.Output
	if evalOutput != "" {
		output = evalOutput
	}
	if output != "" {
		opts = append(opts, decexpr.WithOutput(decimal.Output(output)))
	}

	for _, b := range evalBinds {
		name, src, ok := strings.Cut(b, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid binding %q, want name=expression", b)
		}
		tree, err := decexpr.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", name, err)
		}
		opts = append(opts, decexpr.WithBind(name, tree))
	}

	if verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, decexpr.WithLogger(logger), decexpr.WithDebug(true))
	}

	return opts, nil
}

func formatResult(v interface{}) string {
	switch r := v.(type) {
	case nil:
		return "nil"
	case string:
		return r
	case fmt.Stringer:
		return r.String()
	default:
		return fmt.Sprintf("%v", r)
	}
}
