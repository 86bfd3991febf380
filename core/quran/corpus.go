package quran

import (
	"fmt"
	"sort"

	"github.com/hifzlab/isnad/core/arabic"
)

// Corpus is the in-memory canonical verse store. It owns its verse and surah
// lists and the derived lookup maps exclusively; accessors hand out copies so
// callers can never mutate the canonical data.
type Corpus struct {
	verses []Verse
	surahs []Surah

	// normTexts[i] is arabic.Normalize(verses[i].Text), computed once at
	// construction so the linear match tiers do not re-normalize per call.
	normTexts []string

	byID map[int]Verse
	// byNormalized maps normalized text to every verse sharing that
	// normalization. Collisions are real: diacritic-insensitive wording
	// repeats across refrains.
	byNormalized map[string][]Verse

	info Info
}

// Info describes where a corpus came from and how big it is.
type Info struct {
	// VerseFile and SurahFile are the resolved source paths, empty for
	// corpora built directly from memory.
	VerseFile string
	SurahFile string
	// VerseChecksum and SurahChecksum are BLAKE3 hex digests of the source
	// files, empty for in-memory corpora.
	VerseChecksum string
	SurahChecksum string

	VerseCount int
	SurahCount int
}

// New builds a corpus from verse and surah records. The records are copied
// and re-sorted into canonical order (ascending verse ID, ascending surah
// number), and the lookup maps are derived.
func New(verses []Verse, surahs []Surah) *Corpus {
	c := &Corpus{
		verses:       append([]Verse(nil), verses...),
		surahs:       append([]Surah(nil), surahs...),
		byID:         make(map[int]Verse, len(verses)),
		byNormalized: make(map[string][]Verse, len(verses)),
	}

	sort.Slice(c.verses, func(i, j int) bool { return c.verses[i].ID < c.verses[j].ID })
	sort.Slice(c.surahs, func(i, j int) bool { return c.surahs[i].Number < c.surahs[j].Number })

	c.normTexts = make([]string, len(c.verses))
	for i, v := range c.verses {
		c.byID[v.ID] = v
		norm := arabic.Normalize(v.Text)
		c.normTexts[i] = norm
		c.byNormalized[norm] = append(c.byNormalized[norm], v)
	}

	c.info = Info{
		VerseCount: len(c.verses),
		SurahCount: len(c.surahs),
	}

	return c
}

// Info returns metadata about the corpus source.
func (c *Corpus) Info() Info {
	return c.info
}

// Len returns the number of verses in the corpus.
func (c *Corpus) Len() int {
	return len(c.verses)
}

// VerseAt returns the verse at position i in canonical order.
// It panics if i is out of range, like a slice index.
func (c *Corpus) VerseAt(i int) Verse {
	return c.verses[i]
}

// NormalizedAt returns the precomputed normalized text of the verse at
// position i in canonical order.
func (c *Corpus) NormalizedAt(i int) string {
	return c.normTexts[i]
}

// VerseByID returns the verse with the given sequential ID.
func (c *Corpus) VerseByID(id int) (Verse, bool) {
	v, ok := c.byID[id]
	return v, ok
}

// Verse returns the verse identified by (surah, ayah).
func (c *Corpus) Verse(surah, ayah int) (Verse, bool) {
	for _, v := range c.verses {
		if v.Surah == surah && v.Ayah == ayah {
			return v, true
		}
	}
	return Verse{}, false
}

// LookupNormalized returns all verses whose normalized text equals norm.
// The returned slice is a copy.
func (c *Corpus) LookupNormalized(norm string) []Verse {
	matches := c.byNormalized[norm]
	if len(matches) == 0 {
		return nil
	}
	return append([]Verse(nil), matches...)
}

// Range returns the verses startAyah..endAyah of a surah with their texts
// joined by single spaces. It returns false if startAyah > endAyah or any
// ayah in the range is absent.
func (c *Corpus) Range(surah, startAyah, endAyah int) (VerseRange, bool) {
	if startAyah > endAyah {
		return VerseRange{}, false
	}

	var verses []Verse
	for ayah := startAyah; ayah <= endAyah; ayah++ {
		v, ok := c.Verse(surah, ayah)
		if !ok {
			return VerseRange{}, false
		}
		verses = append(verses, v)
	}

	var full, simple []byte
	for i, v := range verses {
		if i > 0 {
			full = append(full, ' ')
			simple = append(simple, ' ')
		}
		full = append(full, v.Text...)
		simple = append(simple, v.TextSimple...)
	}

	return VerseRange{
		Text:       string(full),
		TextSimple: string(simple),
		Verses:     verses,
	}, true
}

// SurahVerses returns all verses of a surah in ayah order.
func (c *Corpus) SurahVerses(number int) []Verse {
	var verses []Verse
	for _, v := range c.verses {
		if v.Surah == number {
			verses = append(verses, v)
		}
	}
	return verses
}

// Surah returns the surah record with the given number.
func (c *Corpus) Surah(number int) (Surah, bool) {
	for _, s := range c.surahs {
		if s.Number == number {
			return s, true
		}
	}
	return Surah{}, false
}

// Surahs returns a copy of all surah records in order.
func (c *Corpus) Surahs() []Surah {
	return append([]Surah(nil), c.surahs...)
}

// Search returns all verses whose normalized similarity to the normalized
// query exceeds 0.3, sorted by similarity descending and truncated to limit.
// Ties sort by ascending verse ID (corpus order).
func (c *Corpus) Search(query string, limit int) []SearchResult {
	normQuery := arabic.Normalize(query)

	var results []SearchResult
	for i, v := range c.verses {
		score := arabic.Similarity(normQuery, c.normTexts[i])
		if score > 0.3 {
			results = append(results, SearchResult{Verse: v, Similarity: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].Verse.ID < results[j].Verse.ID
	})

	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func formatRef(surah, ayah int) string {
	return fmt.Sprintf("%d:%d", surah, ayah)
}
