package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/analogrelay/sumffi/host"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sumffi",
	Short: "Call and benchmark the sum C-ABI export",
	Long: `Tools to call the sum export compiled into this binary (build with -tags sum),
benchmark it from concurrent goroutines, or load it from an external native
library or WebAssembly module.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return err
		}
		return configureLogger(verbose)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		// Sync fails on unbuffered terminals; nothing is lost when it does.
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var logger = zap.NewNop()

func configureLogger(verbose bool) error {
	if !verbose {
		return nil
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	logger = l
	host.SetLogger(l)
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}
