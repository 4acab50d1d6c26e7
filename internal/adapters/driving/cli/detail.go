package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/domain"
)

var detailJSON bool

var detailCmd = &cobra.Command{
	Use:   "detail [filing-id]",
	Short: "Show one filing in detail",
	Long: `Fetches the full record for one filing: nested client and registrant
information and the disclosed lobbying activities with their government
entities and lobbyists.`,
	Args: cobra.ExactArgs(1),
	RunE: runDetail,
}

func init() {
	detailCmd.Flags().BoolVar(&detailJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(detailCmd)
}

func runDetail(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	filing, err := searchService.FilingDetail(context.Background(), args[0])
	if err != nil {
		if domain.IsAuthFailure(err) {
			return fmt.Errorf("authentication failed, check your API key: %w", err)
		}
		return fmt.Errorf("could not retrieve filing details: %w", err)
	}

	if detailJSON {
		return outputJSON(cmd, filing)
	}
	return outputDetail(cmd, filing)
}

func outputDetail(cmd *cobra.Command, filing *domain.Filing) error {
	if filing.Meta.IsMock {
		cmd.Println("Note: this is generated sample data.")
		cmd.Println()
	}

	cmd.Printf("Filing %s\n", filing.ID)
	cmd.Printf("  Date:   %s\n", filing.FilingDate)
	cmd.Printf("  Type:   %s (%s)\n", filing.FilingType, domain.FilingTypeDisplay(filing.FilingType))
	cmd.Printf("  Year:   %s\n", filing.FilingYear)
	if filing.Amount != nil {
		cmd.Printf("  Amount: $%.0f\n", *filing.Amount)
	}
	cmd.Println()

	if filing.ClientDetail != nil {
		cmd.Printf("Client: %s\n", filing.ClientDetail.Name)
		if filing.ClientDetail.Description != "" {
			cmd.Printf("  %s\n", filing.ClientDetail.Description)
		}
	}
	if filing.RegistrantDetail != nil {
		cmd.Printf("Registrant: %s\n", filing.RegistrantDetail.Name)
		if filing.RegistrantDetail.Description != "" {
			cmd.Printf("  %s\n", filing.RegistrantDetail.Description)
		}
		if filing.RegistrantDetail.Contact != "" {
			cmd.Printf("  Contact: %s\n", filing.RegistrantDetail.Contact)
		}
	}
	cmd.Println()

	for i, activity := range filing.Activities {
		cmd.Printf("Activity %d: %s\n", i+1, activity.GeneralIssueArea)
		if activity.SpecificIssues != "" {
			cmd.Printf("  %s\n", activity.SpecificIssues)
		}
		if len(activity.GovernmentEntities) > 0 {
			names := make([]string, 0, len(activity.GovernmentEntities))
			for _, entity := range activity.GovernmentEntities {
				names = append(names, entity.Name)
			}
			cmd.Printf("  Entities: %s\n", strings.Join(names, ", "))
		}
		if len(activity.Lobbyists) > 0 {
			names := make([]string, 0, len(activity.Lobbyists))
			for _, lobbyist := range activity.Lobbyists {
				names = append(names, lobbyist.Name)
			}
			cmd.Printf("  Lobbyists: %s\n", strings.Join(names, ", "))
		}
	}

	return nil
}
