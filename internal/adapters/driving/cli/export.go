package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export [query]",
	Short: "Export filings to CSV",
	Long: `Collects up to 1000 filings for a query and writes them to a CSV
file with one flattened row per filing.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default <query>_lobbying_data.csv)")
	exportCmd.Flags().BoolVar(&searchPerson, "person", false, "search by lobbyist name instead of organisation")
	exportCmd.Flags().StringVar(&searchYear, "year", "", "exact filing year")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	data, err := searchService.ExportCSV(context.Background(), query, searchFilters())
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	out := exportOut
	if out == "" {
		out = strings.ReplaceAll(strings.ToLower(query), " ", "_") + "_lobbying_data.csv"
	}

	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	cmd.Printf("Wrote %s\n", out)
	return nil
}
