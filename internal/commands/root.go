package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"evalgo.org/fuzzreport/internal/config"
	"evalgo.org/fuzzreport/internal/logging"
	"evalgo.org/fuzzreport/internal/version"
)

// app holds the state shared by subcommands once the root command has
// loaded the configuration.
type app struct {
	cfgFile   string
	logLevel  string
	logFormat string

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCmd builds the fuzzreport command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "fuzzreport",
		Short: "Schema for fuzzing host inventory and final reports",
		Long: `fuzzreport defines the standard final report format fuzzing engines
can emit, including the inventory of the hosts a campaign ran on.

Derive the JSON Schema of the report, validate report documents against
it, or collect a report describing the local machine.`,
		Version:           version.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.init,
		PersistentPostRun: a.sync,
	}

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./config.yaml)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format (json, console)")

	cmd.AddCommand(newSchemaCmd(a))
	cmd.AddCommand(newTypesCmd())
	cmd.AddCommand(newValidateCmd(a))
	cmd.AddCommand(newCollectCmd(a))
	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newVersionCmd())

	cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "%s" .Version}}
`)

	return cmd
}

// Execute runs the command tree with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) init(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	a.logger.Debug("configuration loaded",
		zap.String("command", cmd.CommandPath()),
		zap.String("config", a.cfgFile),
	)
	return nil
}

func (a *app) sync(cmd *cobra.Command, args []string) {
	if a.logger != nil {
		_ = a.logger.Sync() //nolint:errcheck
	}
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Get()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, info.String())

			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				fmt.Fprintf(out, "\nDetails:\n")
				fmt.Fprintf(out, "  Version:        %s\n", info.Version)
				fmt.Fprintf(out, "  Git Commit:     %s\n", info.GitCommit)
				fmt.Fprintf(out, "  Built:          %s\n", info.BuildTime)
				fmt.Fprintf(out, "  Go Version:     %s\n", info.GoVersion)
				fmt.Fprintf(out, "  Platform:       %s\n", info.Platform)
				fmt.Fprintf(out, "  Schema Dialect: %s\n", info.Dialect)
			}
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "verbose version output")
	return cmd
}
