package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"evalgo.org/fuzzreport/internal/inventory"
	"evalgo.org/fuzzreport/internal/validation"
)

func newCollectCmd(a *app) *cobra.Command {
	var hostname string

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Print a report describing the local host",
		Long: `Probe the local machine (CPU, memory, OS) and print a report
containing it as the only host.

Probes that fail are logged and leave the matching field absent.

Examples:
  fuzzreport collect
  fuzzreport collect --hostname fuzz-07 > report.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if hostname == "" {
				hostname = a.cfg.Collect.Hostname
			}

			collector := inventory.New(a.logger, inventory.WithHostname(hostname))
			report, err := collector.Report(cmd.Context(), time.Now())
			if err != nil {
				return fmt.Errorf("collect host: %w", err)
			}

			validator, err := validation.New()
			if err != nil {
				return err
			}
			if errs := validator.ValidateStruct(report); len(errs) > 0 {
				for _, e := range errs {
					a.logger.Error("collected report is invalid", zap.String("field", e.Field), zap.String("message", e.Message))
				}
				return errValidationFailed
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	cmd.Flags().StringVar(&hostname, "hostname", "", "hostname to report instead of the probed one")
	return cmd
}
