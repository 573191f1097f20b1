package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"evalgo.org/fuzzreport/internal/schema"
)

func newSchemaCmd(a *app) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "schema [type]",
		Short: "Print the JSON Schema of a report type",
		Long: `Derive the JSON Schema of a report type and print it.

The type defaults to "report", which pulls in host, cpu and memory.
Run "fuzzreport types" for the full list.

Examples:
  fuzzreport schema
  fuzzreport schema host --format yaml
  fuzzreport schema report --format markdown -o REPORT.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typeName := "report"
			if len(args) == 1 {
				typeName = args[0]
			}

			if format == "" {
				format = a.cfg.Schema.Format
			}
			f, err := schema.ParseFormat(format)
			if err != nil {
				return err
			}

			doc, err := schema.Lookup(typeName)
			if err != nil {
				return err
			}

			data, err := schema.Marshal(doc, f)
			if err != nil {
				return err
			}

			a.logger.Debug("schema derived",
				zap.String("type", typeName),
				zap.String("format", string(f)),
				zap.Int("bytes", len(data)),
			)

			if output != "" {
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return fmt.Errorf("write schema: %w", err)
				}
				a.logger.Info("schema written", zap.String("path", output))
				return nil
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (json, yaml, markdown)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the types a schema can be derived for",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tTITLE")
			for _, name := range schema.Types() {
				doc, err := schema.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\n", name, doc.Title)
			}
			return w.Flush()
		},
	}
}
