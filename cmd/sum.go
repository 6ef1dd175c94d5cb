package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// sumCmd represents the sum command
var sumCmd = &cobra.Command{
	Use:   "sum A B",
	Short: "Call the sum export compiled into this binary",
	Long: `Calls the exported sum symbol through its C entry point and prints the result.
Operands are unsigned machine words and accept 0x, 0o and 0b prefixes.
The export writes its own diagnostic line to standard output before returning.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fn, err := exportedSum()
		if err != nil {
			return err
		}
		a, b, err := parseOperands(args, strconv.IntSize)
		if err != nil {
			return err
		}

		result := fn(uint(a), uint(b))
		logger.Debug("called export",
			zap.Uint64("a", a),
			zap.Uint64("b", b),
			zap.Uint("result", result))

		fmt.Fprintln(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sumCmd)
}
