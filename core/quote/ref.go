// Package quote locates candidate scripture quotations inside free-form text.
//
// Three detection strategies run in fixed priority order: explicitly tagged
// quotes (a configurable tag grammar plus an inline parenthetical form),
// context-triggered quotes ("Allah says ..." and similar phrases followed by
// Arabic text), and untagged fuzzy scans over maximal Arabic segments. Each
// strategy skips spans that overlap a span already retained by a
// higher-priority strategy; spans are half-open byte intervals [Start, End).
package quote

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/hifzlab/isnad/core/errors"
)

// Ref is a parsed verse reference: a single ayah ("2:255") or a contiguous
// range ("2:255-257").
type Ref struct {
	// Surah is the chapter number.
	Surah int
	// StartAyah is the first (or only) ayah.
	StartAyah int
	// EndAyah is the last ayah of a range; equal to StartAyah when IsRange
	// is false.
	EndAyah int
	// IsRange reports whether the reference had an explicit end ayah.
	IsRange bool
}

// String renders the reference in canonical "surah:ayah[-ayah]" form.
func (r Ref) String() string {
	if r.IsRange {
		return fmt.Sprintf("%d:%d-%d", r.Surah, r.StartAyah, r.EndAyah)
	}
	return fmt.Sprintf("%d:%d", r.Surah, r.StartAyah)
}

// refGrammar is the participle grammar for verse references.
// Examples: "1:1", "2:255", "112:1-4"
//
//nolint:govet // participle grammar tags are not standard struct tags
type refGrammar struct {
	Surah   int  `@Int`
	Start   int  `":" @Int`
	RangeTo *int `( "-" @Int )?`
}

// refLexer defines the lexer for verse references.
var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[:\-]`},
})

// refParser is the participle parser for verse references.
var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
)

// ParseRef parses a "surah:ayah" or "surah:start-end" reference string.
func ParseRef(s string) (Ref, error) {
	parsed, err := refParser.ParseString("", s)
	if err != nil {
		return Ref{}, errors.Wrapf(err, "invalid verse reference %q", s)
	}

	ref := Ref{
		Surah:     parsed.Surah,
		StartAyah: parsed.Start,
		EndAyah:   parsed.Start,
	}
	if parsed.RangeTo != nil {
		ref.EndAyah = *parsed.RangeTo
		ref.IsRange = true
	}
	return ref, nil
}
