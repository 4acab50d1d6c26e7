// Package domain contains the core business entities for lobbying
// disclosure search: the canonical Filing record, search requests and
// filters, pagination, visualization aggregates, and the typed errors
// shared across ports and adapters.
//
// All entities are value objects built once per request and never
// mutated after construction.
package domain
