package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/domain"
)

var visualizeJSON bool

var visualizeCmd = &cobra.Command{
	Use:   "visualize [query]",
	Short: "Aggregate filings for charting",
	Long: `Aggregates up to 100 filings for a query into chart-ready data:
filing counts per year, filing counts per registrant, and dated
amount observations.`,
	Args: cobra.ExactArgs(1),
	RunE: runVisualize,
}

func init() {
	visualizeCmd.Flags().BoolVar(&visualizeJSON, "json", false, "output as JSON")
	visualizeCmd.Flags().BoolVar(&searchPerson, "person", false, "search by lobbyist name instead of organisation")
	visualizeCmd.Flags().StringVar(&searchYearFrom, "year-from", "", "earliest filing year")
	visualizeCmd.Flags().StringVar(&searchYearTo, "year-to", "", "latest filing year")
	rootCmd.AddCommand(visualizeCmd)
}

func runVisualize(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	data, err := searchService.VisualizationData(context.Background(), args[0], searchFilters())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Printf("No data found for %q.\n", args[0])
			return nil
		}
		return fmt.Errorf("visualization failed: %w", err)
	}

	if visualizeJSON {
		return outputJSON(cmd, data)
	}
	return outputVisualization(cmd, data)
}

func outputVisualization(cmd *cobra.Command, data *domain.VisualizationData) error {
	cmd.Println("Filings per year:")
	for _, year := range sortedKeys(data.YearsData) {
		cmd.Printf("  %s: %d\n", year, data.YearsData[year])
	}

	cmd.Println()
	cmd.Println("Filings per registrant:")
	for _, registrant := range sortedKeys(data.RegistrantsData) {
		cmd.Printf("  %s: %d\n", registrant, data.RegistrantsData[registrant])
	}

	cmd.Println()
	cmd.Printf("Dated amounts: %d observations\n", len(data.AmountsData))
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
