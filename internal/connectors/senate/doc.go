// Package senate implements the Senate Lobbying Disclosure Act (LDA)
// filing source. It is the reconciliation layer between the core and
// the LDA REST API: it fans a query out across several candidate
// request strategies, classifies the API's polymorphic response shapes,
// normalises heterogeneous filing records into the canonical
// domain.Filing, deduplicates and date-sorts the merged set, and falls
// back to a deterministic synthetic generator when the live API is
// unusable.
//
// The upstream filter contract is inconsistent and partly undocumented.
// Empirically, the full-text "search" parameter under-returns compared
// to the specific client_name/registrant_name fields, the API rejects
// requests without at least one filter, and the reported result count
// diverges from the actual result list. The strategies, the mandatory
// filing_year default, and the locally recomputed pagination in this
// package all exist because of those observations.
package senate
