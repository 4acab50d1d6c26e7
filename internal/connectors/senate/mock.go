package senate

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/domain"
)

// Synthetic vocabulary for generated filings. The lists are fixed so
// the generator stays deterministic across processes.
var (
	companySuffixes = []string{
		"Inc.", "Corp.", "LLC", "Group", "Company", "Technologies",
		"Solutions", "International", "Partners", "& Co.",
	}

	companyPrefixes = []string{
		"Global", "Advanced", "United", "American", "Tech", "Digital",
		"National", "International", "Strategic",
	}

	lobbyingFirms = []string{
		"Smith, Jones & Partners", "Advocacy Associates", "Capital Hill Group",
		"Policy Solutions LLC", "Beltway Advisors", "Washington Strategy Group",
		"Federal Relations", "Government Affairs Team", "Legislative Strategies",
		"Public Policy Partners", "National Advocacy Alliance",
		"Congressional Consultants", "Regulatory Navigation Services",
		"Influence Matters",
	}

	lobbyistNames = []string{
		"John Smith", "Sarah Johnson", "Michael Brown", "Elizabeth Davis",
		"William Thompson", "Maria Rodriguez", "Robert Wilson", "Jennifer Garcia",
		"David Martinez", "Karen Taylor", "Thomas Wright", "Patricia Anderson",
		"James Miller", "Susan White", "Richard Clark", "Nancy Martin",
		"Joseph Brown", "Emily Lewis", "Charles Lee", "Margaret Mitchell",
	}

	coveredPositions = []string{
		"Former Chief of Staff, Sen. Johnson",
		"Former Deputy Assistant Secretary, Department of Commerce",
		"Former Legislative Director, Rep. Davis",
		"Former Senior Counsel, Senate Committee on Finance",
		"Former Policy Advisor, White House",
		"Former Deputy Director, FTC",
		"Former Chief Counsel, House Energy Committee",
		"Former Regulatory Specialist, FDA",
	}

	issueTopics = []string{
		"Technology Policy", "Healthcare Reform", "Environmental Regulations",
		"Tax Reform", "Government Contracts", "Defense Spending", "Trade Policy",
		"Infrastructure Investment", "Privacy Legislation", "Financial Regulations",
		"Telecommunications", "Energy Policy", "Patent Reform",
		"Consumer Protection", "Transportation", "Cybersecurity",
		"Education Funding", "Labor Regulations", "Immigration Reform",
		"Data Privacy", "Artificial Intelligence",
	}

	activityTemplates = []string{
		"Lobbying on behalf of CLIENT regarding ISSUE policy matters.",
		"Represent CLIENT in discussions on proposed legislation affecting ISSUE.",
		"Advocate for CLIENT's interests in ISSUE regulatory matters.",
		"Monitor and report on legislation related to ISSUE for CLIENT.",
		"Engage with congressional offices regarding ISSUE on behalf of CLIENT.",
		"Provide strategic advice to CLIENT on ISSUE policy developments.",
		"Arrange meetings with officials to discuss CLIENT's concerns about ISSUE.",
		"Represent CLIENT's position on ISSUE before federal agencies.",
		"Submit comments on proposed ISSUE regulations on behalf of CLIENT.",
		"Develop coalition strategy for CLIENT to address ISSUE challenges.",
	}

	agencyNames = []string{
		"Department of Commerce", "Federal Communications Commission",
		"Federal Trade Commission", "Department of Health and Human Services",
		"Department of Energy", "Department of Defense",
		"Environmental Protection Agency", "Securities and Exchange Commission",
		"Department of Transportation", "Department of Homeland Security",
		"Department of the Treasury", "Department of State",
		"Food and Drug Administration", "Department of Agriculture",
		"Small Business Administration", "Consumer Financial Protection Bureau",
		"Department of Labor", "Department of Education",
	}

	governmentEntities = []domain.GovernmentEntity{
		{Name: "U.S. Senate", EntityType: "Congress"},
		{Name: "U.S. House of Representatives", EntityType: "Congress"},
		{Name: "Department of Commerce", EntityType: "Executive"},
		{Name: "Federal Communications Commission", EntityType: "Agency"},
		{Name: "Federal Trade Commission", EntityType: "Agency"},
		{Name: "Department of Health and Human Services", EntityType: "Executive"},
		{Name: "Department of Energy", EntityType: "Executive"},
		{Name: "Department of Defense", EntityType: "Executive"},
		{Name: "Environmental Protection Agency", EntityType: "Agency"},
		{Name: "Securities and Exchange Commission", EntityType: "Agency"},
		{Name: "Department of Transportation", EntityType: "Executive"},
		{Name: "Department of the Treasury", EntityType: "Executive"},
		{Name: "Food and Drug Administration", EntityType: "Agency"},
		{Name: "Consumer Financial Protection Bureau", EntityType: "Agency"},
	}
)

// querySeed derives the deterministic seed for a query: an MD5 hash of
// the lowercased, trimmed query, truncated to 63 bits. Repeated calls
// for the same query always see the same synthetic dataset.
func querySeed(query string) int64 {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(query))))
	return int64(binary.BigEndian.Uint64(sum[:8]) &^ (1 << 63))
}

// generateFilings produces the deterministic synthetic result set for a
// query. The total record count is a function of the query hash
// (30-229) so different queries feel different in volume. Every record
// carries Meta.IsMock so callers can label fabricated data.
func generateFilings(query string, filters domain.SearchFilters, page, pageSize int) *domain.SearchResult {
	seed := querySeed(query)
	baseCount := 30 + int(seed%200)

	year := filters.FilingYear
	if year == "" {
		year = strconv.Itoa(timeNow().Year())
	}
	filingYear, err := strconv.Atoi(year)
	if err != nil {
		filingYear = timeNow().Year()
	}

	filingType := filters.FilingType
	if filingType == "" || filingType == "all" {
		filingType = "Q2"
	}

	variations := companyVariations(query, seed)

	start := (page - 1) * pageSize
	remaining := baseCount - start
	if remaining < 0 {
		remaining = 0
	}
	count := pageSize
	if remaining < count {
		count = remaining
	}

	filings := make([]domain.Filing, 0, count)
	for i := 0; i < count; i++ {
		index := start + i
		filings = append(filings, generateFiling(query, seed, index, filingYear, filingType, variations))
	}

	// Keep the orchestrator's sort invariant: newest first, ties broken
	// by ID for stability.
	sort.SliceStable(filings, func(a, b int) bool {
		da, db := sortDate(filings[a].FilingDate), sortDate(filings[b].FilingDate)
		if da.Equal(db) {
			return filings[a].ID > filings[b].ID
		}
		return da.After(db)
	})

	return &domain.SearchResult{
		Filings:    filings,
		TotalCount: baseCount,
		Pagination: domain.NewPagination(baseCount, page, pageSize),
	}
}

// generateFiling builds one synthetic record. Reseeding with seed+index
// makes each record deterministic independently of which page it lands
// on.
func generateFiling(query string, seed int64, index, filingYear int, filingType string, variations []string) domain.Filing {
	rng := rand.New(rand.NewSource(seed + int64(index)))

	clientName := variations[index%len(variations)]
	topic := issueTopics[index%len(issueTopics)]
	firm := mockFirms(query)[index%len(mockFirms(query))]
	contact := lobbyistNames[index%len(lobbyistNames)]

	description := activityTemplates[index%len(activityTemplates)]
	description = strings.ReplaceAll(description, "CLIENT", clientName)
	description = strings.ReplaceAll(description, "ISSUE", topic)

	month := rng.Intn(12) + 1
	day := rng.Intn(28) + 1
	filingDate := time.Date(filingYear, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	amount := mockAmount(rng, 20, 500)

	id := fmt.Sprintf("%s-%d-%04d-%d", mockIDPrefix(query), seed%10000, index, 1000+rng.Intn(9000))

	agencies := []string{agencyNames[index%len(agencyNames)]}

	filing := domain.Filing{
		ID:         id,
		FilingDate: filingDate.Format(displayDateLayout),
		Client:     clientName,
		Registrant: firm,
		Lobbyists:  []string{contact},
		Issues:     "Area: " + topic + "; " + description,
		Agencies:   agencies,
		Amount:     &amount,
		FilingYear: strconv.Itoa(filingYear),
		FilingType: filingType,
		Period:     filingType,
		Source:     SourceName,
		DocumentURL: fmt.Sprintf("https://example.com/docs/%s.pdf", id),
		Activities: []domain.LobbyingActivity{
			{
				GeneralIssueArea: topic,
				SpecificIssues:   description,
			},
		},
		Meta: domain.FilingMeta{
			IsMock:        true,
			OriginalQuery: query,
		},
	}

	// About half the records disclose a second activity.
	if rng.Float64() > 0.5 {
		extraAgency := agencyNames[(index+5)%len(agencyNames)]
		extraTopic := issueTopics[(index+3)%len(issueTopics)]
		filing.Activities = append(filing.Activities, domain.LobbyingActivity{
			GeneralIssueArea: extraTopic,
			SpecificIssues: fmt.Sprintf("Communication with %s regarding %s regulations affecting %s.",
				extraAgency, strings.ToLower(extraTopic), clientName),
		})
		filing.Agencies = append(filing.Agencies, extraAgency)
	}

	return filing
}

// generateDetail builds the deterministic synthetic detail record for a
// filing ID, with 2-4 activities each carrying 2-3 government entities
// and 1-3 lobbyists.
func generateDetail(filingID string) *domain.Filing {
	parts := strings.Split(filingID, "-")
	query := "unknown"
	if len(parts) > 0 && len(parts[0]) > 0 && len(parts[0]) <= 4 {
		query = parts[0]
	}

	seed := querySeed(filingID)
	rng := rand.New(rand.NewSource(seed))

	clientName := mockClientName(query, seed, rng)
	firm := mockFirms(query)[int(seed%int64(len(mockFirms(query))))]

	numActivities := rng.Intn(3) + 2
	activities := make([]domain.LobbyingActivity, 0, numActivities)
	usedTopics := make(map[int]bool, numActivities)
	var agencies []string
	var lobbyists []string

	for i := 0; i < numActivities; i++ {
		topicIdx := rng.Intn(len(issueTopics))
		for usedTopics[topicIdx] {
			topicIdx = (topicIdx + 1) % len(issueTopics)
		}
		usedTopics[topicIdx] = true
		topic := issueTopics[topicIdx]

		numEntities := rng.Intn(2) + 2
		entities := make([]domain.GovernmentEntity, 0, numEntities)
		for j := 0; j < numEntities; j++ {
			entity := governmentEntities[rng.Intn(len(governmentEntities))]
			entities = append(entities, entity)
			agencies = append(agencies, entity.Name)
		}

		numLobbyists := rng.Intn(3) + 1
		activityLobbyists := make([]domain.ActivityLobbyist, 0, numLobbyists)
		for j := 0; j < numLobbyists; j++ {
			idx := rng.Intn(len(lobbyistNames))
			activityLobbyists = append(activityLobbyists, domain.ActivityLobbyist{
				Name:            lobbyistNames[idx],
				CoveredPosition: coveredPositions[idx%len(coveredPositions)],
			})
			lobbyists = append(lobbyists, lobbyistNames[idx])
		}

		description := activityTemplates[rng.Intn(len(activityTemplates))]
		description = strings.ReplaceAll(description, "CLIENT", clientName)
		description = strings.ReplaceAll(description, "ISSUE", topic)

		activities = append(activities, domain.LobbyingActivity{
			GeneralIssueArea:   topic,
			SpecificIssues:     description,
			GovernmentEntities: entities,
			Lobbyists:          activityLobbyists,
		})
	}

	// Year and quarter are derived from the ID so detail views stay
	// stable for the same filing.
	filingYear := 2024
	if len(parts) > 2 {
		if n, err := strconv.Atoi(parts[2]); err == nil {
			filingYear = n%10 + 2015
		}
	}
	quarter := []string{"Q1", "Q2", "Q3", "Q4"}[seed%4]
	firstMonth := map[string]int{"Q1": 1, "Q2": 4, "Q3": 7, "Q4": 10}[quarter]
	month := firstMonth + rng.Intn(3)
	day := rng.Intn(28) + 1
	filingDate := time.Date(filingYear, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	amount := mockAmount(rng, 30, 800)

	issueSummary := activities[0].GeneralIssueArea
	if len(activities) > 1 {
		issueSummary += " and " + strings.ToLower(activities[1].GeneralIssueArea)
	}

	return &domain.Filing{
		ID:         filingID,
		FilingDate: filingDate.Format(displayDateLayout),
		Client:     clientName,
		Registrant: firm,
		Lobbyists:  dedupeStrings(lobbyists),
		Issues:     activitySummary(activities),
		Agencies:   dedupeStrings(agencies),
		Amount:     &amount,
		FilingYear: strconv.Itoa(filingYear),
		FilingType: quarter,
		Period:     quarter,
		Source:     SourceName,
		DocumentURL: fmt.Sprintf("https://example.com/docs/%s.pdf", filingID),
		ClientDetail: &domain.EntityDetail{
			Name:        clientName,
			Description: "Company involved in " + strings.ToLower(issueSummary),
		},
		RegistrantDetail: &domain.EntityDetail{
			Name:        firm,
			Description: "Lobbying and Government Relations Firm",
			Contact:     activities[0].Lobbyists[0].Name,
		},
		Activities: activities,
		Meta: domain.FilingMeta{
			IsMock:        true,
			OriginalQuery: query,
		},
	}
}

// looksLikeMockID recognises identifiers produced by the generator:
// dash-separated with a short (<=4 char) first segment, unlike the
// UUIDs the live API assigns.
func looksLikeMockID(filingID string) bool {
	if !strings.Contains(filingID, "-") {
		return false
	}
	first := strings.SplitN(filingID, "-", 2)[0]
	return len(first) > 0 && len(first) <= 4
}

// companyVariations builds client-name variants around the query so
// results read like a real search hit list.
func companyVariations(query string, seed int64) []string {
	title := titleCase(query)
	variations := make([]string, 0, len(companySuffixes)+len(companyPrefixes)+5)
	for _, suffix := range companySuffixes {
		variations = append(variations, title+" "+suffix)
	}
	for _, prefix := range companyPrefixes {
		variations = append(variations, prefix+" "+title)
	}
	variations = append(variations,
		title,
		strings.ToUpper(query),
		"The "+title+" Group",
		title+" Holdings",
		title+" Ventures",
	)

	words := strings.Fields(query)
	if len(words) > 1 {
		variations = append(variations,
			titleCase(words[0])+" "+strings.Join(words[1:], " "),
			titleCase(words[0])+" "+companySuffixes[seed%int64(len(companySuffixes))],
			titleCase(words[len(words)-1])+" "+companySuffixes[(seed+1)%int64(len(companySuffixes))],
		)
	}

	return variations
}

func mockClientName(query string, seed int64, rng *rand.Rand) string {
	if len(query) <= 2 {
		return fmt.Sprintf("Company %d Inc.", seed%1000)
	}
	title := titleCase(query)
	patterns := []string{
		title + " " + companySuffixes[rng.Intn(len(companySuffixes))],
		companyPrefixes[rng.Intn(len(companyPrefixes))] + " " + title,
		"The " + title + " Group",
		title + " Holdings",
		strings.ToUpper(query),
		title,
	}
	return patterns[rng.Intn(len(patterns))]
}

// mockFirms augments the fixed firm list with query-derived entries.
func mockFirms(query string) []string {
	title := titleCase(query)
	firms := append([]string(nil), lobbyingFirms...)
	firms = append(firms, title+" Lobby Group", mockIDPrefix(query)+"PAC")
	return firms
}

// mockAmount produces a round-thousand figure between lo and hi
// thousand dollars, with some jitter so values look reported rather
// than generated.
func mockAmount(rng *rand.Rand, lo, hi int) float64 {
	base := (rng.Intn(hi-lo+1) + lo) * 1000
	jitter := rng.Intn(10001) - 5000
	return float64((base + jitter + 500) / 1000 * 1000)
}

func mockIDPrefix(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) > 4 {
		q = q[:4]
	}
	return q
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := []string{}
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func activitySummary(activities []domain.LobbyingActivity) string {
	parts := make([]string, 0, len(activities)*2)
	for _, activity := range activities {
		if activity.GeneralIssueArea != "" {
			parts = append(parts, "Area: "+activity.GeneralIssueArea)
		}
		if activity.SpecificIssues != "" {
			parts = append(parts, activity.SpecificIssues)
		}
	}
	if len(parts) == 0 {
		return domain.DefaultIssues
	}
	return strings.Join(parts, "; ")
}
