// Package driven defines the outbound port interfaces the core depends
// on: filing data sources and response caches. Adapters and connectors
// implement these interfaces; the core only ever sees the interface.
package driven
