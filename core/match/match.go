// Package match implements multi-tier matching of arbitrary Arabic text
// against the canonical verse corpus.
//
// Validate runs four tiers in fixed order, short-circuiting at the first
// hit: exact (byte-identical full text), normalized (diacritic-insensitive
// map lookup), partial (containment either direction), and fuzzy
// (edit-distance similarity over the whole corpus). The partial and fuzzy
// tiers deliberately scan all ~6,236 verses linearly: exhaustive search
// favors recall over speed, and per-call cost is O(n · L) in the verse count
// and average verse length. Callers needing bounded latency must impose an
// external timeout.
package match

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/hifzlab/isnad/core/arabic"
	"github.com/hifzlab/isnad/core/quran"
)

// Kind classifies how a validated text matched the corpus.
type Kind int

const (
	// None means no tier matched.
	None Kind = iota
	// Exact is a byte-identical match against the full-diacritics text.
	Exact
	// Normalized is an equal-after-normalization match.
	Normalized
	// Partial is a containment match between normalized input and verse.
	Partial
	// Fuzzy is an edit-distance similarity match.
	Fuzzy
)

// String returns the lowercase name of the match kind.
func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Exact:
		return "exact"
	case Normalized:
		return "normalized"
	case Partial:
		return "partial"
	case Fuzzy:
		return "fuzzy"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the kind as its string name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a kind from its string name.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "none":
		*k = None
	case "exact":
		*k = Exact
	case "normalized":
		*k = Normalized
	case "partial":
		*k = Partial
	case "fuzzy":
		*k = Fuzzy
	default:
		return fmt.Errorf("unknown match kind %q", name)
	}
	return nil
}

// Tier confidence constants.
const (
	exactConfidence      = 1.0
	normalizedConfidence = 0.95

	// The fuzzy tier retains candidates at a softer pre-filter of
	// 0.9 x FuzzyThreshold; the full threshold then gates validity.
	fuzzyPrefilterRatio = 0.9

	// rangeAcceptSimilarity is the similarity floor for accepting a quote
	// against a concatenated verse range.
	rangeAcceptSimilarity = 0.85
)

// Suggestion is a candidate verse with its confidence and reference.
type Suggestion struct {
	Verse      quran.Verse `json:"verse"`
	Confidence float64     `json:"confidence"`
	Reference  string      `json:"reference"`
}

// Result is the outcome of validating one piece of text.
type Result struct {
	// IsValid reports whether an authentic verse was matched.
	IsValid bool `json:"is_valid"`
	// Kind is the tier that matched.
	Kind Kind `json:"match_kind"`
	// Confidence is the match confidence in [0, 1].
	Confidence float64 `json:"confidence"`
	// Verse is the matched verse, nil when Kind is None.
	Verse *quran.Verse `json:"matched_verse,omitempty"`
	// Reference is the "surah:ayah" reference of the matched verse.
	Reference string `json:"reference,omitempty"`
	// Differences are the positional character diffs between the input and
	// the matched verse's canonical text.
	Differences []arabic.Difference `json:"differences,omitempty"`
	// Suggestions are alternative candidate verses, capped at the
	// configured maximum.
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// Options tunes the match engine. All fields are fixed at construction.
type Options struct {
	// FuzzyThreshold is the minimum similarity for a fuzzy match to be
	// valid (default 0.8).
	FuzzyThreshold float64
	// MaxSuggestions caps the suggestion list (default 3).
	MaxSuggestions int
	// IncludePartial enables the containment tier (default true).
	IncludePartial bool
	// MinDetectionLength is the minimum rune count for a segment to be
	// considered by DetectAndValidate (default 10).
	MinDetectionLength int
}

// DefaultOptions returns the standard engine options.
func DefaultOptions() Options {
	return Options{
		FuzzyThreshold:     0.8,
		MaxSuggestions:     3,
		IncludePartial:     true,
		MinDetectionLength: 10,
	}
}

// Engine matches text against a corpus. The corpus is read-only, so one
// Engine is safe for concurrent use.
type Engine struct {
	corpus *quran.Corpus
	opts   Options
}

// New creates a match engine over the given corpus.
func New(corpus *quran.Corpus, opts Options) *Engine {
	return &Engine{corpus: corpus, opts: opts}
}

// Options returns the engine's configuration.
func (e *Engine) Options() Options {
	return e.opts
}

// Corpus returns the engine's corpus.
func (e *Engine) Corpus() *quran.Corpus {
	return e.corpus
}

// Validate classifies text against the corpus, trying each tier in order and
// stopping at the first hit.
func (e *Engine) Validate(text string) Result {
	trimmed := strings.TrimSpace(text)

	if !arabic.ContainsArabic(trimmed) {
		return noMatch()
	}

	// Tier 1: exact match on the full-diacritics text.
	if v, ok := e.findExact(trimmed); ok {
		return matched(v, Exact, exactConfidence)
	}

	// Tier 2: normalized map lookup.
	normInput := arabic.Normalize(trimmed)
	if collisions := e.corpus.LookupNormalized(normInput); len(collisions) > 0 {
		primary := collisions[0]
		result := matched(primary, Normalized, normalizedConfidence)
		result.Differences = arabic.FindDifferences(trimmed, primary.Text)

		if len(collisions) > 1 {
			n := len(collisions)
			if n > e.opts.MaxSuggestions {
				n = e.opts.MaxSuggestions
			}
			for _, v := range collisions[:n] {
				result.Suggestions = append(result.Suggestions, Suggestion{
					Verse:      v,
					Confidence: normalizedConfidence,
					Reference:  v.Ref(),
				})
			}
		}
		return result
	}

	// Tier 3: containment either direction, first hit in corpus order.
	if e.opts.IncludePartial {
		if v, confidence, ok := e.findPartial(normInput); ok {
			result := matched(v, Partial, confidence)
			result.Differences = arabic.FindDifferences(trimmed, v.Text)
			return result
		}
	}

	// Tier 4: exhaustive fuzzy scan.
	if v, confidence, suggestions, ok := e.findFuzzy(normInput); ok {
		result := matched(v, Fuzzy, confidence)
		result.IsValid = confidence >= e.opts.FuzzyThreshold
		result.Differences = arabic.FindDifferences(trimmed, v.Text)
		result.Suggestions = suggestions
		return result
	}

	return noMatch()
}

// findExact scans the verse list for byte-identical full text.
func (e *Engine) findExact(text string) (quran.Verse, bool) {
	for i := 0; i < e.corpus.Len(); i++ {
		v := e.corpus.VerseAt(i)
		if v.Text == text {
			return v, true
		}
	}
	return quran.Verse{}, false
}

// findPartial tests containment between the normalized input and each
// verse's normalized text, stopping at the first hit in corpus order.
// Confidence rises with how much of the container the contained span covers.
func (e *Engine) findPartial(normInput string) (quran.Verse, float64, bool) {
	if normInput == "" {
		return quran.Verse{}, 0, false
	}

	for i := 0; i < e.corpus.Len(); i++ {
		normVerse := e.corpus.NormalizedAt(i)

		if strings.Contains(normVerse, normInput) {
			ratio := float64(len([]rune(normInput))) / float64(len([]rune(normVerse)))
			return e.corpus.VerseAt(i), 0.7 + ratio*0.2, true
		}
		if strings.Contains(normInput, normVerse) {
			ratio := float64(len([]rune(normVerse))) / float64(len([]rune(normInput)))
			return e.corpus.VerseAt(i), 0.6 + ratio*0.2, true
		}
	}
	return quran.Verse{}, 0, false
}

// findFuzzy scores every verse by normalized similarity and keeps those at or
// above the pre-filter (0.9 x FuzzyThreshold). The best candidate becomes the
// match; the top candidates become suggestions.
func (e *Engine) findFuzzy(normInput string) (quran.Verse, float64, []Suggestion, bool) {
	type candidate struct {
		verse      quran.Verse
		similarity float64
	}

	prefilter := e.opts.FuzzyThreshold * fuzzyPrefilterRatio

	var candidates []candidate
	for i := 0; i < e.corpus.Len(); i++ {
		similarity := arabic.Similarity(normInput, e.corpus.NormalizedAt(i))
		if similarity >= prefilter {
			candidates = append(candidates, candidate{e.corpus.VerseAt(i), similarity})
		}
	}

	if len(candidates) == 0 {
		return quran.Verse{}, 0, nil, false
	}

	// Sort descending by similarity; the scan order already gives ascending
	// verse IDs, and the stable sort preserves that for ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].similarity > candidates[j].similarity
	})

	n := len(candidates)
	if n > e.opts.MaxSuggestions {
		n = e.opts.MaxSuggestions
	}
	suggestions := make([]Suggestion, 0, n)
	for _, c := range candidates[:n] {
		suggestions = append(suggestions, Suggestion{
			Verse:      c.verse,
			Confidence: c.similarity,
			Reference:  c.verse.Ref(),
		})
	}

	best := candidates[0]
	return best.verse, best.similarity, suggestions, true
}

func matched(v quran.Verse, kind Kind, confidence float64) Result {
	verse := v
	return Result{
		IsValid:    true,
		Kind:       kind,
		Confidence: confidence,
		Verse:      &verse,
		Reference:  v.Ref(),
	}
}

func noMatch() Result {
	return Result{
		IsValid:    false,
		Kind:       None,
		Confidence: 0,
	}
}
