package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"evalgo.org/fuzzreport/internal/validation"
)

// errValidationFailed is returned when a document does not validate.
var errValidationFailed = errors.New("validation failed")

func newValidateCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a report document",
		Long: `Validate a report JSON document against the report schema.

Use "-" to read the document from stdin.

Examples:
  fuzzreport validate report.json
  fuzzer --report-json | fuzzreport validate -
  fuzzreport validate report.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			validator, err := validation.New()
			if err != nil {
				return err
			}

			result := validator.ValidateReport(data)
			a.logger.Debug("document validated",
				zap.String("file", args[0]),
				zap.Bool("valid", result.Valid),
				zap.Int("errors", len(result.Errors)),
			)

			if err := printResult(cmd.OutOrStdout(), result, asJSON); err != nil {
				return err
			}
			if !result.Valid {
				return errValidationFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func printResult(out io.Writer, result *validation.ValidationResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if result.Valid {
		fmt.Fprintln(out, "✓ Document is valid")
		return nil
	}

	fmt.Fprintln(out, "✗ Validation failed:")
	for _, e := range result.Errors {
		if e.Value != nil {
			fmt.Fprintf(out, "  - %s: %s (value: %v)\n", e.Field, e.Message, e.Value)
		} else {
			fmt.Fprintf(out, "  - %s: %s\n", e.Field, e.Message)
		}
	}
	return nil
}
