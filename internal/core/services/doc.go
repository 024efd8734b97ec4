// Package services contains the core application services wiring the
// driven ports (stores, normalisers, AI services) to the driving ports
// consumed by the CLI, HTTP API and MCP server.
package services
