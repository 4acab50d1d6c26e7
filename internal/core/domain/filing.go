package domain

// UnknownDate is the sentinel value used when no filing date could be
// resolved from a raw record. Everything else in the FilingDate field is
// a "Jan 02, 2006" formatted calendar date.
const UnknownDate = "Unknown"

// DefaultIssues is the sentinel used when a filing discloses no issue text.
const DefaultIssues = "No specific issues provided"

// Filing is the canonical representation of one lobbying disclosure
// report after normalisation. Raw API records arrive in several shapes;
// this is the single shape the rest of the system consumes.
type Filing struct {
	// ID is the filing identifier, empty when unresolvable.
	// It is the uniqueness key for deduplication.
	ID string `json:"id"`

	// FilingDate is a "Jan 02, 2006" formatted date or UnknownDate.
	FilingDate string `json:"filing_date"`

	// Client is the client display name ("Unknown" when absent).
	Client string `json:"client"`

	// Registrant is the lobbying firm display name ("Unknown" when absent).
	Registrant string `json:"registrant"`

	// Lobbyists are deduplicated, non-empty lobbyist names.
	Lobbyists []string `json:"lobbyists"`

	// Issues is free disclosure text, DefaultIssues when absent.
	Issues string `json:"issues"`

	// Agencies are the government agencies contacted.
	Agencies []string `json:"agencies"`

	// Amount is the disclosed income or expense, nil when not reported.
	// Currency symbols and thousands separators never survive
	// normalisation.
	Amount *float64 `json:"amount"`

	// FilingYear is the reporting year as reported upstream.
	FilingYear string `json:"filing_year"`

	// FilingType is the filing type code (Q1..Q4, R, A, T).
	FilingType string `json:"filing_type"`

	// Period is the reporting period as reported upstream.
	Period string `json:"period"`

	// Source identifies the data source that produced the record.
	Source string `json:"source"`

	// DocumentURL links to the filed document when available.
	DocumentURL string `json:"document_url,omitempty"`

	// ClientDetail and RegistrantDetail carry the nested entity records
	// in the detail view. Summary records leave them nil.
	ClientDetail     *EntityDetail `json:"client_detail,omitempty"`
	RegistrantDetail *EntityDetail `json:"registrant_detail,omitempty"`

	// Activities carry the disclosed lobbying activities in the detail
	// view.
	Activities []LobbyingActivity `json:"lobbying_activities,omitempty"`

	// Meta flags synthetic records so callers can label fabricated data.
	Meta FilingMeta `json:"meta"`
}

// EntityDetail is the nested client or registrant record used by the
// detail view.
type EntityDetail struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Country     string `json:"country,omitempty"`
	State       string `json:"state,omitempty"`
	ClientType  string `json:"client_type,omitempty"`
	Contact     string `json:"contact,omitempty"`
}

// LobbyingActivity is one disclosed activity within a filing.
type LobbyingActivity struct {
	GeneralIssueArea   string             `json:"general_issue_area"`
	SpecificIssues     string             `json:"specific_issues"`
	GovernmentEntities []GovernmentEntity `json:"government_entities,omitempty"`
	Lobbyists          []ActivityLobbyist `json:"lobbyists,omitempty"`
}

// GovernmentEntity is a government body contacted during an activity.
type GovernmentEntity struct {
	Name       string `json:"name"`
	EntityType string `json:"entity_type,omitempty"`
}

// ActivityLobbyist is a lobbyist engaged on an activity, with the
// covered government position they previously held, when disclosed.
type ActivityLobbyist struct {
	Name            string `json:"name"`
	CoveredPosition string `json:"covered_position,omitempty"`
}

// FilingMeta carries record provenance.
type FilingMeta struct {
	// IsMock is true for deterministically generated synthetic records.
	IsMock bool `json:"is_mock"`

	// OriginalQuery is the query a mock record was generated from.
	OriginalQuery string `json:"original_query,omitempty"`
}

// FilingTypes maps filing type codes to their display names.
var FilingTypes = map[string]string{
	"Q1": "First Quarter - Report",
	"Q2": "Second Quarter - Report",
	"Q3": "Third Quarter - Report",
	"Q4": "Fourth Quarter - Report",
	"R":  "Registration",
	"A":  "Amendment",
	"T":  "Termination",
}

// FilingTypeDisplay returns the display name for a filing type code,
// or the code itself when unrecognised.
func FilingTypeDisplay(code string) string {
	if display, ok := FilingTypes[code]; ok {
		return display
	}
	return code
}
