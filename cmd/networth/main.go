package main

import (
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/networth/internal/config"
	"github.com/rgehrsitz/networth/internal/domain"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// now is the clock used for the default start date
var now = time.Now

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "networth %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "networth",
		Short: "Monthly net worth projection CLI",
		Long: `Project net worth forward month by month under three return/income
scenarios, report when each target is first reached, and solve for the
monthly contribution each target requires.`,
		SilenceUsage: true,
	}

	root.AddCommand(projectCmd())
	root.AddCommand(solveCmd())
	root.AddCommand(sensitivityCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(exampleCmd())
	root.AddCommand(initCmd())
	root.AddCommand(cacheCmd())
	root.AddCommand(versionCmd())
	return root
}

// loadConfig parses and validates a plan file
func loadConfig(path string) (*domain.Configuration, error) {
	return config.NewInputParser().LoadFromFile(path)
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid\n", args[0])
			return nil
		},
	}
}

func exampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print an example plan file",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			parser := config.NewInputParser()
			data, err := parser.Marshal(parser.CreateExampleConfiguration(), format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringP("format", "f", "yaml", "File format (yaml, toml)")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}
