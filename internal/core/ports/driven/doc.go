// Package driven defines the driven ports: interfaces the core
// depends on and adapters implement (storage, text extraction,
// morphological annotation, configuration).
package driven
