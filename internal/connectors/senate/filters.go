package senate

import (
	"strconv"
	"strings"

	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/domain"
)

// includeFiling decides keep/drop for one normalised filing against the
// user's filters. Every check fails open: only a fully parseable,
// provably violating comparison excludes. A malformed filter value or a
// malformed filing field never drops valid data.
func includeFiling(filing domain.Filing, filters domain.SearchFilters) bool {
	if filters.YearFrom != "" && filing.FilingYear != "" {
		from, fromErr := strconv.Atoi(strings.TrimSpace(filters.YearFrom))
		year, yearErr := strconv.Atoi(strings.TrimSpace(filing.FilingYear))
		if fromErr == nil && yearErr == nil && year < from {
			return false
		}
	}

	if filters.YearTo != "" && filing.FilingYear != "" {
		to, toErr := strconv.Atoi(strings.TrimSpace(filters.YearTo))
		year, yearErr := strconv.Atoi(strings.TrimSpace(filing.FilingYear))
		if toErr == nil && yearErr == nil && year > to {
			return false
		}
	}

	if filters.IssueArea != "" && filing.Issues != "" {
		if !strings.Contains(strings.ToLower(filing.Issues), strings.ToLower(filters.IssueArea)) {
			return false
		}
	}

	if filters.Agency != "" && len(filing.Agencies) > 0 {
		needle := strings.ToLower(filters.Agency)
		matched := false
		for _, agency := range filing.Agencies {
			if strings.Contains(strings.ToLower(agency), needle) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if filters.AmountMin != "" && filing.Amount != nil {
		if minAmount, err := strconv.ParseFloat(strings.TrimSpace(filters.AmountMin), 64); err == nil {
			if *filing.Amount < minAmount {
				return false
			}
		}
	}

	return true
}
