package diffkit

import (
	"image"

	"github.com/corona10/goimagehash"

	"github.com/clauseworks/pactdiff/internal/core/domain"
)

// phashBits is the bit width of the perception hash.
const phashBits = 64

// PerceptualHash computes the 64-bit perception hash of an image.
// Normalisers store it in document metadata at ingest time so visual
// comparison never re-decodes the source.
func PerceptualHash(img image.Image) (uint64, error) {
	h, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return 0, err
	}
	return h.GetHash(), nil
}

// CompareVisual compares two perception hashes and returns a finding
// with the Hamming distance and a normalised similarity score.
func CompareVisual(originalHash, modifiedHash uint64, threshold float64) domain.VisualFinding {
	h1 := goimagehash.NewImageHash(originalHash, goimagehash.PHash)
	h2 := goimagehash.NewImageHash(modifiedHash, goimagehash.PHash)

	distance, err := h1.Distance(h2)
	if err != nil {
		return domain.VisualFinding{
			Applicable: false,
			Notes:      []string{"visual comparison failed: " + err.Error()},
		}
	}

	similarity := 1.0 - float64(distance)/float64(phashBits)
	finding := domain.VisualFinding{
		Applicable: true,
		Similarity: similarity,
		Distance:   distance,
	}
	if threshold > 0 && similarity < threshold {
		finding.Notes = append(finding.Notes, "visual similarity below threshold")
	}
	return finding
}

// VisualNotApplicable builds the finding used when one or both
// documents have no visual representation.
func VisualNotApplicable(notes ...string) domain.VisualFinding {
	if len(notes) == 0 {
		notes = []string{"Visual comparison not applicable or skipped for the given file types."}
	}
	return domain.VisualFinding{Applicable: false, Notes: notes}
}
