// Package process combines quote extraction, matching, and correction into a
// single pass over a document.
//
// A Processor scans generated text for scripture quotations using the three
// extraction strategies in priority order, validates every retained span
// against the corpus, and splices canonical corrections back into the
// document. Per-quote failures never abort the pass: a malformed or
// misquoted span is reported in its analysis and processing continues.
package process

import (
	"fmt"
	"strings"

	"github.com/hifzlab/isnad/core/match"
	"github.com/hifzlab/isnad/core/quote"
)

// Analysis describes one detected quote after validation.
type Analysis struct {
	// Original is the quoted text as it appeared in the document.
	Original string `json:"original"`
	// Corrected is the canonical wording when a correction applies,
	// otherwise the original text.
	Corrected string `json:"corrected"`
	// IsValid reports whether the quote was authenticated. A tagged quote
	// whose discovered reference disagrees with its tag is invalid even
	// when the text itself matches a verse.
	IsValid bool `json:"is_valid"`
	// Reference is the "surah:ayah[-ayah]" reference, when identified.
	Reference string `json:"reference,omitempty"`
	// Confidence is the match confidence in [0, 1].
	Confidence float64 `json:"confidence"`
	// Strategy is how the quote was detected.
	Strategy quote.Strategy `json:"detection_method"`
	// Start and End are the span's byte offsets in the source document.
	Start int `json:"start_index"`
	End   int `json:"end_index"`
	// WasCorrected reports whether Corrected differs from Original.
	WasCorrected bool `json:"was_corrected"`
}

// Output is the result of processing one document.
type Output struct {
	// CorrectedText is the document with accepted corrections applied.
	CorrectedText string `json:"corrected_text"`
	// AllValid reports whether every retained quote was valid and needed
	// no correction.
	AllValid bool `json:"all_valid"`
	// Quotes are the per-span analyses in detection order.
	Quotes []Analysis `json:"quotes"`
	// Warnings describe untagged spans that look like verse content.
	Warnings []string `json:"warnings"`
}

// Options tunes the processor.
type Options struct {
	// AutoCorrect splices canonical wording into the output (default true).
	AutoCorrect bool
	// MinConfidence is the floor for retaining contextual and fuzzy spans
	// that did not validate outright (default 0.85).
	MinConfidence float64
	// ScanUntagged enables the bare-segment fuzzy scan (default true).
	ScanUntagged bool
	// TagFormat is the tag grammar to extract and to mirror when
	// re-tagging corrections (default xml).
	TagFormat quote.TagFormat
}

// DefaultOptions returns the standard processor options.
func DefaultOptions() Options {
	return Options{
		AutoCorrect:   true,
		MinConfidence: 0.85,
		ScanUntagged:  true,
		TagFormat:     quote.FormatXML,
	}
}

// Processor runs the extraction and correction pipeline over documents.
// It is safe for concurrent use: all state is fixed at construction.
type Processor struct {
	engine *match.Engine
	opts   Options
}

// New creates a processor over the given match engine.
func New(engine *match.Engine, opts Options) *Processor {
	return &Processor{engine: engine, opts: opts}
}

// Options returns the processor's configuration.
func (p *Processor) Options() Options {
	return p.opts
}

// Process validates and optionally corrects every scripture quote in text.
func (p *Processor) Process(text string) Output {
	out := Output{CorrectedText: text}

	// Retained spans, used for overlap suppression by the lower-priority
	// strategies.
	var retained []quote.Span

	// Strategy 1: explicitly tagged quotes. Always retained, even when
	// invalid, so the caller can flag a misquote.
	for _, span := range quote.ExtractTagged(text, p.opts.TagFormat) {
		analysis := p.analyzeSpan(span)
		out.Quotes = append(out.Quotes, analysis)
		retained = append(retained, span)

		if p.opts.AutoCorrect && analysis.WasCorrected {
			replacement := p.opts.TagFormat.Format(analysis.Reference, analysis.Corrected)
			out.CorrectedText = strings.Replace(out.CorrectedText, span.FullMatch, replacement, 1)
		}
	}

	// Strategy 2: context-triggered quotes. Retained only when valid or
	// confident enough.
	for _, span := range quote.ExtractContextual(text, retained) {
		analysis := p.analyzeSpan(span)
		if !analysis.IsValid && analysis.Confidence < p.opts.MinConfidence {
			continue
		}
		out.Quotes = append(out.Quotes, analysis)
		retained = append(retained, span)

		if p.opts.AutoCorrect && analysis.WasCorrected {
			out.CorrectedText = strings.Replace(out.CorrectedText, span.Text, analysis.Corrected, 1)
		}
	}

	// Strategy 3: untagged fuzzy scan over whatever remains unclaimed.
	if p.opts.ScanUntagged {
		for _, span := range quote.ExtractUntagged(text, retained) {
			analysis := p.analyzeSpan(span)
			if !analysis.IsValid && analysis.Confidence < p.opts.MinConfidence {
				continue
			}
			out.Quotes = append(out.Quotes, analysis)
			retained = append(retained, span)
			out.Warnings = append(out.Warnings, fmt.Sprintf(
				"Potential untagged Quran quote detected: %q (possibly %s, %.0f%% confidence)",
				truncateRunes(span.Text, 50), analysis.Reference, analysis.Confidence*100))

			if p.opts.AutoCorrect && analysis.WasCorrected {
				out.CorrectedText = strings.Replace(out.CorrectedText, span.Text, analysis.Corrected, 1)
			}
		}
	}

	out.AllValid = true
	for _, q := range out.Quotes {
		if !q.IsValid || q.WasCorrected {
			out.AllValid = false
			break
		}
	}

	return out
}

// analyzeSpan validates one span, routing range references to range analysis
// and everything else through the standard match pipeline.
func (p *Processor) analyzeSpan(span quote.Span) Analysis {
	if span.Ref != nil && span.Ref.IsRange {
		return p.analyzeRangeSpan(span)
	}

	result := p.engine.Validate(span.Text)

	analysis := Analysis{
		Original:   span.Text,
		Corrected:  span.Text,
		IsValid:    result.IsValid,
		Reference:  result.Reference,
		Confidence: result.Confidence,
		Strategy:   span.Strategy,
		Start:      span.Start,
		End:        span.End,
	}

	// A tag reference that disagrees with the discovered reference marks
	// the quote invalid; it is a mismatch, not an error.
	if span.Ref != nil && result.Reference != "" && result.Reference != span.Ref.String() {
		analysis.IsValid = false
	}

	if result.IsValid && result.Kind != match.Exact && result.Verse != nil {
		analysis.Corrected = result.Verse.Text
		analysis.WasCorrected = true
	}

	if analysis.Reference == "" && span.Ref != nil {
		analysis.Reference = span.Ref.String()
	}

	return analysis
}

// analyzeRangeSpan validates a span against a contiguous verse range.
func (p *Processor) analyzeRangeSpan(span quote.Span) Analysis {
	ref := *span.Ref
	assessment := p.engine.AnalyzeRange(span.Text, ref.Surah, ref.StartAyah, ref.EndAyah)

	analysis := Analysis{
		Original:   span.Text,
		Corrected:  span.Text,
		IsValid:    assessment.IsValid,
		Reference:  ref.String(),
		Confidence: assessment.Confidence,
		Strategy:   span.Strategy,
		Start:      span.Start,
		End:        span.End,
	}

	if assessment.WasCorrected {
		analysis.Corrected = assessment.Corrected
		analysis.WasCorrected = true
	}

	return analysis
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
