// Package driving defines the driving ports: the use-case interfaces
// the CLI (or any other front end) calls into the core through.
package driving
