package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/analogrelay/sumffi/host"
)

// callCmd represents the call command
var callCmd = &cobra.Command{
	Use:   "call --lib PATH A B",
	Short: "Load an external library or wasm module and call its sum export",
	Long: `Loads the artifact at --lib and calls its sum symbol.
Paths ending in .wasm are run with wazero; anything else is opened with dlopen.
A library that does not export sum fails to load.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := cmd.Flags().GetString("lib")
		if err != nil {
			return fmt.Errorf("failed to get lib: %w", err)
		}
		a, b, err := parseOperands(args, 64)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		lib, err := host.Open(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to load library: %w", err)
		}
		defer func() {
			if err := lib.Close(ctx); err != nil {
				logger.Warn("failed to close library", zap.String("path", path), zap.Error(err))
			}
		}()

		result, err := lib.Sum(ctx, a, b)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(callCmd)

	callCmd.Flags().StringP("lib", "l", "", "Path to a shared library or .wasm module exporting sum")
	_ = callCmd.MarkFlagRequired("lib")
}
