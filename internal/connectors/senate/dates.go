package senate

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/domain"
)

// displayDateLayout is the human-facing date format for FilingDate.
const displayDateLayout = "Jan 02, 2006"

// epochSentinel is the sort key for unresolvable dates, so they order
// after every real date in a descending sort.
var epochSentinel = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// dateFields are the known field names carrying a filing date, in
// priority order. The upstream API's naming is inconsistent across
// endpoints and entity types, hence the breadth.
var dateFields = []string{
	"received_date", "filing_date", "date", "effective_date",
	"created", "updated", "modified", "submission_date", "dt_posted",
}

var (
	isoPrefixPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	isoAnyPattern    = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`)
	usAnyPattern     = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})`)
)

// resolveDate extracts a best-guess filing date from a raw record.
//
// Tier one tries the known date fields for a value starting with
// YYYY-MM-DD. Tier two scans every string-valued field (in sorted key
// order, for determinism) for an embedded YYYY-MM-DD or MM/DD/YYYY
// substring. Returns domain.UnknownDate when nothing parses.
func resolveDate(raw map[string]any) string {
	for _, field := range dateFields {
		value, ok := raw[field]
		if !ok || value == nil {
			continue
		}
		text := fmt.Sprint(value)
		if !isoPrefixPattern.MatchString(text) {
			continue
		}
		if parsed, err := time.Parse("2006-01-02", text[:10]); err == nil {
			return parsed.Format(displayDateLayout)
		}
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		text, ok := raw[key].(string)
		if !ok {
			continue
		}
		if match := isoAnyPattern.FindString(text); match != "" {
			if parsed, err := time.Parse("2006-01-02", match); err == nil {
				return parsed.Format(displayDateLayout)
			}
		}
		if match := usAnyPattern.FindString(text); match != "" {
			if parsed, err := time.Parse("1/2/2006", match); err == nil {
				return parsed.Format(displayDateLayout)
			}
		}
	}

	return domain.UnknownDate
}

// sortDate parses a FilingDate back into a calendar value for sorting.
// Unknown or unparseable dates get the epoch sentinel so they sort last
// under descending order.
func sortDate(filingDate string) time.Time {
	if filingDate == "" || filingDate == domain.UnknownDate {
		return epochSentinel
	}
	parsed, err := time.Parse(displayDateLayout, filingDate)
	if err != nil {
		return epochSentinel
	}
	return parsed
}
