package match

import (
	"strings"

	"github.com/hifzlab/isnad/core/arabic"
	"github.com/hifzlab/isnad/core/quran"
)

// RangeAssessment is the outcome of comparing quoted text against a
// contiguous verse range.
type RangeAssessment struct {
	// IsValid reports whether the quote was accepted against the range.
	IsValid bool `json:"is_valid"`
	// Confidence is 1.0 for a literal match, 0.95 for a normalized match,
	// the similarity score otherwise, and 0 when the range does not exist.
	Confidence float64 `json:"confidence"`
	// Corrected is the canonical concatenation when the quote was accepted
	// but not literally equal; empty otherwise.
	Corrected string `json:"corrected,omitempty"`
	// WasCorrected reports whether Corrected is populated.
	WasCorrected bool `json:"was_corrected"`
	// Range holds the canonical verses, empty when the range is invalid.
	Range quran.VerseRange `json:"-"`
}

// AnalyzeRange compares text against the concatenation of the verses
// startAyah..endAyah of a surah. An inverted or missing range is reported as
// invalid with confidence 0, never as an error. The quote is accepted on
// literal equality, normalized equality, or similarity at or above 0.85;
// whenever it is accepted but not literally equal, the canonical
// concatenation is returned as the correction.
func (e *Engine) AnalyzeRange(text string, surah, startAyah, endAyah int) RangeAssessment {
	r, ok := e.corpus.Range(surah, startAyah, endAyah)
	if !ok {
		return RangeAssessment{}
	}

	trimmed := strings.TrimSpace(text)
	normInput := arabic.Normalize(trimmed)
	normRange := arabic.Normalize(r.Text)

	isLiteral := trimmed == r.Text
	isNormalized := normInput == normRange
	similarity := arabic.Similarity(normInput, normRange)

	assessment := RangeAssessment{Range: r}
	switch {
	case isLiteral:
		assessment.Confidence = 1.0
	case isNormalized:
		assessment.Confidence = normalizedConfidence
	default:
		assessment.Confidence = similarity
	}

	assessment.IsValid = isLiteral || isNormalized || similarity >= rangeAcceptSimilarity

	if assessment.IsValid && !isLiteral {
		assessment.Corrected = r.Text
		assessment.WasCorrected = true
	}

	return assessment
}
