package senate

import (
	"encoding/json"

	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/domain"
)

// APIResponse is the classified shape of one successful upstream
// response. The LDA API answers either with a paged envelope
// ({count, results: [...]}) or with a bare JSON array; entity endpoints
// return entity records that need a second request per entity to reach
// the actual filings. Classifying here means a new upstream shape is a
// visible gap in the consumer's type switch, not a silent fallthrough.
type APIResponse interface {
	isAPIResponse()
}

// PagedResponse is the standard filings envelope. Count is upstream's
// claim about the total matches; it is logged but never used for
// pagination because it is observed to diverge from the result list.
type PagedResponse struct {
	Count   int
	Results []map[string]any
}

// ListResponse is a bare array of entity records (clients, registrants
// or lobbyists) that requires a second hop to fetch each entity's
// filings.
type ListResponse struct {
	Entities []map[string]any
}

func (PagedResponse) isAPIResponse() {}
func (ListResponse) isAPIResponse()  {}

// classifyResponse parses body into the tagged shape appropriate for
// endpoint. Filings endpoints may legitimately answer with either the
// paged envelope or a bare list; entity endpoints always yield a
// ListResponse.
func classifyResponse(endpoint string, body []byte) (APIResponse, error) {
	trimmed := firstNonSpace(body)

	switch trimmed {
	case '[':
		var items []map[string]any
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, malformed(body, err)
		}
		if isEntityEndpoint(endpoint) {
			return ListResponse{Entities: items}, nil
		}
		// A bare list from a filings endpoint is a complete result set.
		return PagedResponse{Count: len(items), Results: items}, nil

	case '{':
		var envelope struct {
			Count   int              `json:"count"`
			Results []map[string]any `json:"results"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, malformed(body, err)
		}
		if isEntityEndpoint(endpoint) {
			return ListResponse{Entities: envelope.Results}, nil
		}
		return PagedResponse{Count: envelope.Count, Results: envelope.Results}, nil

	default:
		return nil, malformed(body, nil)
	}
}

// malformed builds the error for a non-JSON or unexpected-shape body,
// carrying a short excerpt for the logs.
func malformed(body []byte, err error) error {
	excerpt := string(body)
	if len(excerpt) > 200 {
		excerpt = excerpt[:200]
	}
	detail := "unexpected response shape: " + excerpt
	if err != nil {
		detail = err.Error() + ": " + excerpt
	}
	return domain.NewSourceError(domain.KindMalformed, 0, detail)
}

func firstNonSpace(body []byte) byte {
	for _, b := range body {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b
	}
	return 0
}

// isEntityEndpoint reports whether endpoint returns entity records
// rather than filings.
func isEntityEndpoint(endpoint string) bool {
	switch endpoint {
	case "clients/", "registrants/", "lobbyists/",
		"clients/search/", "registrants/search/", "lobbyists/search/":
		return true
	}
	return false
}
