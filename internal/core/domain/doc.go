// Package domain contains the core business entities for pactdiff:
// documents, comparisons, differences and settings. It has no
// dependencies on adapters or infrastructure.
package domain
