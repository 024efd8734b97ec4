// Package normalisers contains format-specific document normalisers.
// Each subpackage converts one raw format (plain text, markdown, DOCX,
// PDF, image) into the canonical domain.Document representation.
package normalisers
