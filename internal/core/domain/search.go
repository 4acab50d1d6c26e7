package domain

// SearchFilters are the optional constraints a caller can apply to a
// filing search. The zero value means "no constraint" for every field.
type SearchFilters struct {
	// YearFrom and YearTo bound the filing year (inclusive). Empty means
	// unbounded.
	YearFrom string
	YearTo   string

	// FilingYear pins the search to one reporting year. The upstream
	// API rejects unfiltered queries, so sources default this to the
	// current calendar year when no year constraint is given at all.
	FilingYear string

	// IssueArea is a case-insensitive substring match against the
	// filing's issue text.
	IssueArea string

	// Agency is a case-insensitive substring match against the filing's
	// contacted agencies.
	Agency string

	// AmountMin excludes filings whose reported amount is provably below
	// this value. Non-numeric values are ignored (fail open).
	AmountMin string

	// IsPerson switches the query strategy to lobbyist-name search.
	IsPerson bool

	// SearchType optionally forces one strategy: "client", "registrant"
	// or "lobbyist".
	SearchType string

	// FilingType restricts results to one filing type code (Q1..Q4, R,
	// A, T). Empty or "all" means every type.
	FilingType string

	// GovernmentEntity filters by contacted government entity.
	GovernmentEntity string
}

// Pagination describes one page within a result set. It is always
// computed from the locally deduplicated result count, never from the
// upstream count field, which is known to diverge from the actual
// result list.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
	NextPage   int   `json:"next_page,omitempty"`
	PrevPage   int   `json:"prev_page,omitempty"`
	PageRange  []int `json:"page_range"`
}

// NewPagination computes pagination for totalResults at the given page
// and pageSize. The page range spans two pages either side of the
// current page, clipped to [1, TotalPages].
func NewPagination(totalResults, page, pageSize int) Pagination {
	if pageSize <= 0 {
		pageSize = 1
	}
	if page < 1 {
		page = 1
	}

	totalPages := 1
	if totalResults > 0 {
		totalPages = (totalResults + pageSize - 1) / pageSize
	}

	p := Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
	if p.HasNext {
		p.NextPage = page + 1
	}
	if p.HasPrev {
		p.PrevPage = page - 1
	}

	lo := page - 2
	if lo < 1 {
		lo = 1
	}
	hi := page + 2
	if hi > totalPages {
		hi = totalPages
	}
	for i := lo; i <= hi; i++ {
		p.PageRange = append(p.PageRange, i)
	}

	return p
}

// SearchResult is what a filing source returns for one search request.
// An empty Filings slice with a nil error is a genuine zero-result
// search, not a failure.
type SearchResult struct {
	// Filings is the deduplicated, date-sorted page of results.
	Filings []Filing

	// TotalCount is the deduplicated result count across all pages.
	TotalCount int

	// Pagination is derived from TotalCount, never from upstream.
	Pagination Pagination

	// Warning is a non-fatal, user-visible notice. It is set when the
	// live API produced nothing usable and synthetic records were
	// substituted.
	Warning string
}

// VisualizationData aggregates a result set for charting.
type VisualizationData struct {
	// YearsData counts filings per filing year.
	YearsData map[string]int `json:"years_data"`

	// RegistrantsData counts filings per registrant.
	RegistrantsData map[string]int `json:"registrants_data"`

	// AmountsData pairs each dated filing with its reported amount.
	AmountsData []AmountPoint `json:"amounts_data"`
}

// AmountPoint is one (date, amount) observation.
type AmountPoint struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}
