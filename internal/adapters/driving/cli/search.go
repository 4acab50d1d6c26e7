package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/domain"
)

var (
	searchPage       int
	searchPageSize   int
	searchYearFrom   string
	searchYearTo     string
	searchYear       string
	searchIssue      string
	searchAgency     string
	searchAmountMin  string
	searchPerson     bool
	searchType       string
	searchFilingType string
	searchJSON       bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search lobbying filings",
	Long: `Searches the Senate LDA database for filings matching a person or
organisation name. Results are merged across several query strategies,
deduplicated by filing ID and sorted newest first.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "result page")
	searchCmd.Flags().IntVarP(&searchPageSize, "page-size", "n", 25, "results per page (10-100)")
	searchCmd.Flags().StringVar(&searchYearFrom, "year-from", "", "earliest filing year")
	searchCmd.Flags().StringVar(&searchYearTo, "year-to", "", "latest filing year")
	searchCmd.Flags().StringVar(&searchYear, "year", "", "exact filing year")
	searchCmd.Flags().StringVar(&searchIssue, "issue", "", "issue area substring filter")
	searchCmd.Flags().StringVar(&searchAgency, "agency", "", "agency substring filter")
	searchCmd.Flags().StringVar(&searchAmountMin, "amount-min", "", "minimum reported amount")
	searchCmd.Flags().BoolVar(&searchPerson, "person", false, "search by lobbyist name instead of organisation")
	searchCmd.Flags().StringVar(&searchType, "search-type", "", "force one strategy: client, registrant or lobbyist")
	searchCmd.Flags().StringVar(&searchFilingType, "type", "", "filing type code (Q1..Q4, R, A, T)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func searchFilters() domain.SearchFilters {
	return domain.SearchFilters{
		YearFrom:   searchYearFrom,
		YearTo:     searchYearTo,
		FilingYear: searchYear,
		IssueArea:  searchIssue,
		Agency:     searchAgency,
		AmountMin:  searchAmountMin,
		IsPerson:   searchPerson,
		SearchType: searchType,
		FilingType: searchFilingType,
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	result, err := searchService.Search(context.Background(), query, searchFilters(), searchPage, searchPageSize)
	if err != nil {
		if domain.IsAuthFailure(err) {
			return fmt.Errorf("authentication failed, check your API key: %w", err)
		}
		if domain.IsRateLimited(err) {
			return fmt.Errorf("the LDA API is rate limiting requests, try again shortly: %w", err)
		}
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputJSON(cmd, result)
	}
	return outputSearchTable(cmd, query, result)
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, query string, result *domain.SearchResult) error {
	if result.Warning != "" {
		cmd.Printf("Note: %s\n\n", result.Warning)
	}

	if len(result.Filings) == 0 {
		cmd.Printf("No filings found for %q. Try alternate search terms or a wider year range.\n", query)
		return nil
	}

	cmd.Printf("Found %d filings (page %d of %d):\n\n",
		result.TotalCount, result.Pagination.Page, result.Pagination.TotalPages)

	for i, filing := range result.Filings {
		label := filing.Client
		if filing.Meta.IsMock {
			label += " [sample data]"
		}
		cmd.Printf("  [%d] %s (%s)\n", i+1, label, filing.FilingDate)
		cmd.Printf("      Registrant: %s\n", filing.Registrant)
		if filing.Amount != nil {
			cmd.Printf("      Amount: $%.0f\n", *filing.Amount)
		}
		if len(filing.Lobbyists) > 0 {
			cmd.Printf("      Lobbyists: %s\n", strings.Join(filing.Lobbyists, ", "))
		}
		cmd.Printf("      Issues: %s\n", truncate(filing.Issues, 120))
		cmd.Printf("      ID: %s\n", filing.ID)
		cmd.Println()
	}

	if result.Pagination.HasNext {
		cmd.Printf("More results: --page %d\n", result.Pagination.NextPage)
	}
	return nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}
