package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandrolain/decexpr"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite <expression>",
	Short: "Print the rewritten form of an expression",
	Long: `Parse an expression and print its rewritten form without
evaluating it.

The rewritten form shows literals already folded to decimals and
operators resolved to primitive calls. Static errors (bad assignment
targets, unknown rounding strategies, wrong argument counts) are
reported here.`,
	Args: cobra.ExactArgs(1),
	RunE: runRewrite,
}

func init() {
	rootCmd.AddCommand(rewriteCmd)
}

func runRewrite(cmd *cobra.Command, args []string) error {
	tree, err := decexpr.Parse(args[0])
	if err != nil {
		printError("parse", err)
		return err
	}
	expr, err := decexpr.Rewrite(tree)
	if err != nil {
		printError("rewrite", err)
		return err
	}
	fmt.Println(expr.AST().String())
	return nil
}
