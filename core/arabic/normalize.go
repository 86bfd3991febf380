// Package arabic provides Arabic text normalization and comparison primitives.
//
// Quranic text is written with several layers of orthography — vowel marks
// (tashkeel), recitation marks, and letter variants — that vary between
// editions while the underlying wording is identical. Normalize collapses
// these variants into a single comparable form so that quotations can be
// matched regardless of how fully they are vocalized.
//
// All functions are pure and safe for concurrent use by multiple goroutines.
package arabic

import (
	"regexp"
	"strings"
)

// Normalization rule patterns. Rules are applied in the fixed order given in
// Normalize; later rules assume the cleanup done by earlier ones, so the
// sequence must not be reordered.
var (
	// Diacritics (tashkeel): fatha, kasra, damma, sukun, shadda, tanween,
	// dagger alef, and the Quranic recitation marks.
	diacriticsRe = regexp.MustCompile(`[\x{064B}-\x{065F}\x{0670}\x{06D6}-\x{06ED}]`)

	// Alef variants: hamza-above, hamza-below, madda, wasla. Plain alef is untouched.
	alefVariantsRe = regexp.MustCompile(`[أإآٱ]`)

	alefMaqsuraRe = regexp.MustCompile(`ى`)
	tehMarbutaRe  = regexp.MustCompile(`ة`)
	tatweelRe     = regexp.MustCompile(`ـ`)
	wawHamzaRe    = regexp.MustCompile(`ؤ`)
	yaHamzaRe     = regexp.MustCompile(`ئ`)

	multiSpaceRe = regexp.MustCompile(`\s+`)
)

// Arabic Unicode block ranges used for detection and segmentation.
const arabicRanges = `\x{0600}-\x{06FF}\x{0750}-\x{077F}\x{08A0}-\x{08FF}\x{FB50}-\x{FDFF}\x{FE70}-\x{FEFF}`

var (
	arabicCharRe = regexp.MustCompile(`[` + arabicRanges + `]`)

	// A segment is a maximal run of Arabic characters, allowing whitespace
	// between Arabic words inside the run.
	arabicSegmentRe = regexp.MustCompile(`[` + arabicRanges + `][` + arabicRanges + `\s]*`)
)

// Options controls which normalization rules Normalize applies.
// The zero value disables every rule; use DefaultOptions for the standard set.
type Options struct {
	// RemoveDiacritics strips tashkeel and recitation marks.
	RemoveDiacritics bool
	// NormalizeAlef folds the alef variants (أ إ آ ٱ) to plain alef (ا).
	NormalizeAlef bool
	// NormalizeAlefMaqsura folds alef maqsura (ى) to ya (ي).
	NormalizeAlefMaqsura bool
	// NormalizeTehMarbuta folds teh marbuta (ة) to heh (ه).
	NormalizeTehMarbuta bool
	// RemoveTatweel strips tatweel/kashida (ـ) elongation characters.
	RemoveTatweel bool
	// NormalizeHamza folds hamza carriers (ؤ ئ) to bare waw/ya.
	NormalizeHamza bool
	// NormalizeWhitespace collapses whitespace runs to a single space and trims.
	NormalizeWhitespace bool
}

// DefaultOptions returns the standard normalization options with every rule enabled.
func DefaultOptions() Options {
	return Options{
		RemoveDiacritics:     true,
		NormalizeAlef:        true,
		NormalizeAlefMaqsura: true,
		NormalizeTehMarbuta:  true,
		RemoveTatweel:        true,
		NormalizeHamza:       true,
		NormalizeWhitespace:  true,
	}
}

// Normalize canonicalizes Arabic text for comparison using the default options.
// The result is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	return NormalizeWith(text, DefaultOptions())
}

// NormalizeWith canonicalizes Arabic text using the given options.
// Rules apply in a fixed order: diacritics, alef variants, alef maqsura,
// teh marbuta, tatweel, hamza carriers, whitespace.
func NormalizeWith(text string, opts Options) string {
	result := text

	if opts.RemoveDiacritics {
		result = diacriticsRe.ReplaceAllString(result, "")
	}
	if opts.NormalizeAlef {
		result = alefVariantsRe.ReplaceAllString(result, "ا")
	}
	if opts.NormalizeAlefMaqsura {
		result = alefMaqsuraRe.ReplaceAllString(result, "ي")
	}
	if opts.NormalizeTehMarbuta {
		result = tehMarbutaRe.ReplaceAllString(result, "ه")
	}
	if opts.RemoveTatweel {
		result = tatweelRe.ReplaceAllString(result, "")
	}
	if opts.NormalizeHamza {
		result = wawHamzaRe.ReplaceAllString(result, "و")
		result = yaHamzaRe.ReplaceAllString(result, "ي")
	}
	if opts.NormalizeWhitespace {
		result = strings.TrimSpace(multiSpaceRe.ReplaceAllString(result, " "))
	}

	return result
}

// RemoveDiacritics strips only the tashkeel and recitation marks,
// preserving base letters and letter variants.
func RemoveDiacritics(text string) string {
	return diacriticsRe.ReplaceAllString(text, "")
}

// ContainsArabic reports whether text contains at least one character in the
// Arabic Unicode blocks.
func ContainsArabic(text string) bool {
	return arabicCharRe.MatchString(text)
}

// Segment is an extracted run of Arabic text with its byte offsets in the
// source string, given as a half-open interval [Start, End).
type Segment struct {
	Text  string
	Start int
	End   int
}

// ExtractSegments returns the maximal Arabic runs in mixed text.
// Each segment's Text is trimmed of surrounding whitespace; the offsets
// cover the untrimmed match.
func ExtractSegments(text string) []Segment {
	var segments []Segment
	for _, loc := range arabicSegmentRe.FindAllStringIndex(text, -1) {
		trimmed := strings.TrimSpace(text[loc[0]:loc[1]])
		if trimmed == "" {
			continue
		}
		segments = append(segments, Segment{
			Text:  trimmed,
			Start: loc[0],
			End:   loc[1],
		})
	}
	return segments
}
