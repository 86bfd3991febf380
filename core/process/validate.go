package process

import (
	"fmt"

	"github.com/hifzlab/isnad/core/match"
)

// Summary is a lightweight validation report without corrections.
type Summary struct {
	// HasQuranContent reports whether any quote was detected at all.
	HasQuranContent bool `json:"has_quran_content"`
	// AllValid reports whether every detected quote checked out.
	AllValid bool `json:"all_valid"`
	// Issues describes each imprecise or invalid quote.
	Issues []string `json:"issues,omitempty"`
}

// QuickValidate scans text for scripture quotes and reports problems
// without rewriting anything.
func QuickValidate(engine *match.Engine, text string) Summary {
	opts := DefaultOptions()
	opts.AutoCorrect = false
	out := New(engine, opts).Process(text)

	summary := Summary{
		HasQuranContent: len(out.Quotes) > 0,
		AllValid:        out.AllValid,
	}
	for _, q := range out.Quotes {
		if q.IsValid && !q.WasCorrected {
			continue
		}
		issue := fmt.Sprintf("Quote %q is imprecise or invalid", truncateRunes(q.Original, 30))
		if q.Reference != "" {
			issue += fmt.Sprintf(" (should be %s)", q.Reference)
		}
		summary.Issues = append(summary.Issues, issue)
	}
	return summary
}

// QuoteCheck is the result of validating a single isolated quote.
type QuoteCheck struct {
	// IsValid reports whether the quote matched, and matched the expected
	// reference when one was given.
	IsValid bool `json:"is_valid"`
	// CorrectText is the canonical wording when the quote needs
	// correction, empty otherwise.
	CorrectText string `json:"correct_text,omitempty"`
	// ActualRef is the reference the quote actually matched, if any.
	ActualRef string `json:"actual_ref,omitempty"`
}

// ValidateQuote checks one quote in isolation. When expectedRef is non-empty
// the quote must also match that reference to be valid.
func (p *Processor) ValidateQuote(text, expectedRef string) QuoteCheck {
	result := p.engine.Validate(text)

	check := QuoteCheck{
		IsValid:   result.IsValid,
		ActualRef: result.Reference,
	}
	if expectedRef != "" && result.Reference != "" && result.Reference != expectedRef {
		check.IsValid = false
	}
	if result.IsValid && result.Kind != match.Exact && result.Verse != nil {
		check.CorrectText = result.Verse.Text
	}
	return check
}
