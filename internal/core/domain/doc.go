// Package domain contains the core entities of the corpus manager:
// documents, their sentence/token/feature annotation graph, and the
// value types exchanged between services and adapters.
//
// Domain types carry no persistence or NLP logic. The annotation graph
// is produced by an Annotator adapter, persisted by the ingest service
// and read back by the search and archive services.
package domain
