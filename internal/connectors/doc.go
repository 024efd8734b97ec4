// Package connectors provides document ingestion from external sources.
// Each connector feeds documents into the DocumentService from a specific
// source type (inbox directory, future cloud drives).
package connectors
