package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ValentinKolb/gFlux/cmd/demo"
	"github.com/ValentinKolb/gFlux/cmd/perf"
)

const (
	Version = "1.0.2"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "gflux",
		Short: "predictable state container",
		Long: fmt.Sprintf(`gFlux (v%s)

A minimal, single-threaded state container library written in Go:
one state value, updated through pure reducers, observed through
subscriptions and wrapped by composable middleware.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of gFlux",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gFlux v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(demo.DemoCmd)
	RootCmd.AddCommand(perf.PerfCmd)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
