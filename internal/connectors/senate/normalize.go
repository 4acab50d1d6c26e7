package senate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/domain"
)

// SourceName identifies records produced by this data source.
const SourceName = "Senate LDA"

// amountFields are tried in order; the first value that parses wins.
// The API reports money under several names depending on filing type.
var amountFields = []string{
	"income_amount", "expense_amount", "amount", "lobbying_expenses",
	"income", "expenses",
}

// normalizeFiling converts one raw API record of unknown shape into the
// canonical Filing. It never fails: an empty or nil record yields a
// fully defaulted Filing.
func normalizeFiling(raw map[string]any) domain.Filing {
	filing := domain.Filing{
		ID:         "",
		FilingDate: domain.UnknownDate,
		Client:     "Unknown",
		Registrant: "Unknown",
		Lobbyists:  []string{},
		Issues:     domain.DefaultIssues,
		Agencies:   []string{},
		Source:     SourceName,
	}
	if len(raw) == 0 {
		return filing
	}

	if id := stringValue(raw["id"]); id != "" {
		filing.ID = id
	} else {
		filing.ID = stringValue(raw["filing_uuid"])
	}

	filing.FilingDate = resolveDate(raw)

	if name := entityName(raw, "client", "client_name"); name != "" {
		filing.Client = name
	}
	if name := entityName(raw, "registrant", "registrant_name"); name != "" {
		filing.Registrant = name
	}

	filing.Lobbyists = extractNames(raw["lobbyists"], "lobbyist_name")
	filing.Issues = extractIssues(raw)

	if agencies := extractNames(raw["covered_agencies"], ""); len(agencies) > 0 {
		filing.Agencies = agencies
	} else if agencies := extractNames(raw["agencies"], ""); len(agencies) > 0 {
		filing.Agencies = agencies
	}

	filing.Amount = extractAmount(raw)

	if year := stringValue(raw["filing_year"]); year != "" {
		filing.FilingYear = year
	} else {
		filing.FilingYear = stringValue(raw["year"])
	}

	if ft := stringValue(raw["filing_type"]); ft != "" {
		filing.FilingType = ft
	} else {
		filing.FilingType = stringValue(raw["type"])
	}

	if period := stringValue(raw["period"]); period != "" {
		filing.Period = period
	} else {
		filing.Period = stringValue(raw["filing_period"])
	}

	if docURL := stringValue(raw["filing_document_url"]); docURL != "" {
		filing.DocumentURL = docURL
	} else {
		filing.DocumentURL = stringValue(raw["document_url"])
	}

	if meta, ok := raw["meta"].(map[string]any); ok {
		if isMock, ok := meta["is_mock"].(bool); ok {
			filing.Meta.IsMock = isMock
		}
		filing.Meta.OriginalQuery = stringValue(meta["original_query"])
	}

	return filing
}

// entityName resolves a client/registrant display name across the
// tolerated shapes: nested object with a name key, bare string, or a
// flat *_name field.
func entityName(raw map[string]any, nestedKey, flatKey string) string {
	switch value := raw[nestedKey].(type) {
	case map[string]any:
		if name := stringValue(value["name"]); name != "" {
			return name
		}
	case string:
		if value != "" {
			return value
		}
	}
	return stringValue(raw[flatKey])
}

// extractNames resolves a name list across the tolerated shapes: a list
// of strings, a list of objects keyed by "name"/altKey/first+last name,
// or a comma-separated string. Blank entries are dropped and the result
// is deduplicated, first occurrence winning.
func extractNames(value any, altKey string) []string {
	var names []string

	switch list := value.(type) {
	case []any:
		for _, item := range list {
			switch entry := item.(type) {
			case string:
				names = append(names, entry)
			case map[string]any:
				names = append(names, objectName(entry, altKey))
			}
		}
	case string:
		names = strings.Split(list, ",")
	}

	seen := make(map[string]bool, len(names))
	out := []string{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func objectName(entry map[string]any, altKey string) string {
	if name := stringValue(entry["name"]); name != "" {
		return name
	}
	if altKey != "" {
		if name := stringValue(entry[altKey]); name != "" {
			return name
		}
	}
	first := stringValue(entry["first_name"])
	last := stringValue(entry["last_name"])
	return strings.TrimSpace(first + " " + last)
}

// extractIssues resolves disclosure text across three tiers: an
// explicit specific_issues field, the lobbying_activities list, then a
// general_issue_areas field. Falls back to the default sentinel.
func extractIssues(raw map[string]any) string {
	if issues := stringValue(raw["specific_issues"]); issues != "" {
		return issues
	}

	if activities, ok := raw["lobbying_activities"].([]any); ok {
		var parts []string
		for _, item := range activities {
			activity, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if area := stringValue(activity["general_issue_area"]); area != "" {
				parts = append(parts, "Area: "+area)
			} else if area := stringValue(activity["general_issue_code_display"]); area != "" {
				parts = append(parts, "Area: "+area)
			}
			if specific := stringValue(activity["specific_issues"]); specific != "" {
				parts = append(parts, specific)
			} else if desc := stringValue(activity["description"]); desc != "" {
				parts = append(parts, desc)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	}

	switch areas := raw["general_issue_areas"].(type) {
	case []any:
		var parts []string
		for _, area := range areas {
			if text := stringValue(area); text != "" {
				parts = append(parts, text)
			}
		}
		if len(parts) > 0 {
			return "Area(s): " + strings.Join(parts, ", ")
		}
	case string:
		if areas != "" {
			return "Area(s): " + areas
		}
	}

	return domain.DefaultIssues
}

// extractAmount resolves the first parseable money field. String values
// are stripped of currency symbols and thousands separators before
// parsing.
func extractAmount(raw map[string]any) *float64 {
	for _, field := range amountFields {
		value, ok := raw[field]
		if !ok || value == nil {
			continue
		}
		switch amount := value.(type) {
		case float64:
			return &amount
		case int:
			f := float64(amount)
			return &f
		case string:
			clean := strings.ReplaceAll(strings.ReplaceAll(amount, "$", ""), ",", "")
			clean = strings.TrimSpace(clean)
			if clean == "" {
				continue
			}
			if parsed, err := strconv.ParseFloat(clean, 64); err == nil {
				return &parsed
			}
		}
	}
	return nil
}

// stringValue renders a raw JSON value as a string. JSON numbers that
// are whole render without a decimal point so years and IDs read
// naturally.
func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
