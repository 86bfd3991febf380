package quote

import (
	"fmt"
	"regexp"
)

// TagFormat selects the tag grammar used for explicitly marked quotes.
type TagFormat string

const (
	// FormatXML marks quotes as <quran ref="S:A[-A]">TEXT</quran>.
	FormatXML TagFormat = "xml"
	// FormatMarkdown marks quotes as ```quran ref="S:A[-A]" fenced blocks.
	FormatMarkdown TagFormat = "markdown"
	// FormatBracket marks quotes as [[Q:S:A[-A]|TEXT]].
	FormatBracket TagFormat = "bracket"
	// FormatMinimal is the inline parenthetical form: ARABIC_TEXT (S:A[-A]).
	// It has no block grammar; the inline pattern is always active.
	FormatMinimal TagFormat = "minimal"
)

// Format renders corrected quote text back into this tag grammar.
func (f TagFormat) Format(ref, text string) string {
	switch f {
	case FormatXML:
		return fmt.Sprintf(`<quran ref=%q>%s</quran>`, ref, text)
	case FormatMarkdown:
		return fmt.Sprintf("```quran ref=%q\n%s\n```", ref, text)
	case FormatBracket:
		return fmt.Sprintf("[[Q:%s|%s]]", ref, text)
	default:
		return fmt.Sprintf("%s (%s)", text, ref)
	}
}

// Valid reports whether f is a known tag format.
func (f TagFormat) Valid() bool {
	switch f {
	case FormatXML, FormatMarkdown, FormatBracket, FormatMinimal:
		return true
	}
	return false
}

// The reference grammar inside tags: digits:digits with an optional -digits range.
const refPattern = `\d+:\d+(?:-\d+)?`

// Tag grammar patterns, each capturing (reference, inner text).
var tagPatterns = map[TagFormat]*regexp.Regexp{
	FormatXML: regexp.MustCompile(
		`(?i)<quran\s+ref=["'](` + refPattern + `)["']>([\s\S]*?)</quran>`),
	FormatMarkdown: regexp.MustCompile(
		"(?i)```quran\\s+ref=[\"'](" + refPattern + ")[\"'][\r\n]+([\\s\\S]*?)[\r\n]+```"),
	FormatBracket: regexp.MustCompile(
		`\[\[Q:(` + refPattern + `)\|([\s\S]*?)\]\]`),
}

// inlineRefRe matches the always-active inline parenthetical form:
// a run of Arabic text immediately followed by "(S:A[-A])".
var inlineRefRe = regexp.MustCompile(
	`([` + arabicRanges + `\s]+)\s*\((\d{1,3}:\d{1,3}(?:-\d{1,3})?)\)`)

// arabicRanges duplicates the Arabic Unicode block ranges used by the
// arabic package, spelled out here because these patterns interleave the
// ranges with their own grammar.
const arabicRanges = `\x{0600}-\x{06FF}\x{0750}-\x{077F}\x{08A0}-\x{08FF}\x{FB50}-\x{FDFF}\x{FE70}-\x{FEFF}`

// contextTriggerRes are the phrases that suggest a verse quotation follows.
// Order matters: spans are claimed in iteration order, and the overlap test
// between contextual matches is the documented half-open interval test only.
var contextTriggerRes = []*regexp.Regexp{
	// English trigger phrases.
	regexp.MustCompile(`(?i)(?:Allah\s+says?|God\s+says?|the\s+Quran\s+says?|in\s+the\s+Quran|Quranic\s+verse|verse\s+states?|ayah|ayat|surah)\s*[:\-]?\s*`),
	// Arabic trigger phrases.
	regexp.MustCompile(`(?:قال\s+الله|قال\s+تعالى|يقول\s+الله|في\s+القرآن|الآية|سورة)\s*[:\-]?\s*`),
	// Bare reference parentheticals like (2:255) or (2:255-257).
	regexp.MustCompile(`\(?\d{1,3}:\d{1,3}(?:-\d{1,3})?\)?`),
	// Named references like [Al-Baqarah:255].
	regexp.MustCompile(`\[[\w\-]+:\d+(?:-\d+)?\]`),
}

// arabicRunRe matches an Arabic run anchored at the start of a string,
// used to capture the text following a context trigger.
var arabicRunRe = regexp.MustCompile(`^[` + arabicRanges + `\s]+`)

// arabicSegmentRe matches maximal Arabic segments for the untagged scan.
var arabicSegmentRe = regexp.MustCompile(`[` + arabicRanges + `][` + arabicRanges + `\s]*`)
