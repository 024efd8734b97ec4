// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): storage, AI services, external tools.
package driven
