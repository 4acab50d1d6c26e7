package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/domain"
	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/logger"
)

const (
	// ExportPageSize is the per-request window used while collecting
	// export rows.
	ExportPageSize = 250

	// ExportMaxRecords caps the total exported rows.
	ExportMaxRecords = 1000
)

var exportHeader = []string{
	"id", "filing_date", "client", "registrant", "lobbyists", "issues",
	"agencies", "amount", "filing_year", "filing_type", "period",
	"source", "is_mock",
}

// ExportCSV fetches up to ExportMaxRecords results for query and
// renders them as CSV with one flattened row per filing.
func (s *SearchService) ExportCSV(ctx context.Context, query string, filters domain.SearchFilters) ([]byte, error) {
	logger.Section("CSV Export")

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrQueryRequired
	}

	var filings []domain.Filing
	for page := 1; len(filings) < ExportMaxRecords; page++ {
		result, err := s.source.SearchFilings(ctx, query, filters, page, ExportPageSize)
		if err != nil {
			return nil, err
		}
		filings = append(filings, result.Filings...)
		if !result.Pagination.HasNext || len(result.Filings) == 0 {
			break
		}
	}
	if len(filings) > ExportMaxRecords {
		filings = filings[:ExportMaxRecords]
	}
	logger.Info("Exporting %d filings", len(filings))

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}
	for _, filing := range filings {
		if err := writer.Write(exportRow(filing)); err != nil {
			return nil, fmt.Errorf("writing CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func exportRow(filing domain.Filing) []string {
	amount := ""
	if filing.Amount != nil {
		amount = strconv.FormatFloat(*filing.Amount, 'f', 2, 64)
	}
	return []string{
		filing.ID,
		filing.FilingDate,
		filing.Client,
		filing.Registrant,
		strings.Join(filing.Lobbyists, "; "),
		filing.Issues,
		strings.Join(filing.Agencies, "; "),
		amount,
		filing.FilingYear,
		filing.FilingType,
		filing.Period,
		filing.Source,
		strconv.FormatBool(filing.Meta.IsMock),
	}
}
