// Package services implements the driving ports: document ingestion,
// corpus search and concordance reconstruction, corpus management and
// the XML archive bridge.
package services
