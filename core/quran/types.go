// Package quran provides the immutable canonical verse corpus and its lookups.
//
// A Corpus is loaded once from data files at construction and never mutated
// afterward, so a single instance is safe to share across arbitrarily many
// concurrent readers without locking.
package quran

// RevelationType classifies where a surah was revealed.
type RevelationType string

const (
	// Meccan surahs were revealed before the hijra.
	Meccan RevelationType = "Meccan"
	// Medinan surahs were revealed after the hijra.
	Medinan RevelationType = "Medinan"
)

// Verse is a single ayah. The ID is the sequential verse number (1-6236),
// strictly increasing in canonical recitation order. (Surah, Ayah) uniquely
// identifies exactly one verse.
type Verse struct {
	// ID is the sequential verse number (1-6236).
	ID int `json:"id"`
	// Surah is the chapter number (1-114).
	Surah int `json:"surah"`
	// Ayah is the verse number within the surah.
	Ayah int `json:"ayah"`
	// Text is the full Arabic text with diacritics (Uthmani script).
	Text string `json:"text"`
	// TextSimple is the simplified Arabic text without diacritics.
	TextSimple string `json:"textSimple"`
	// Page is the page number in the standard Uthmani mushaf (optional).
	Page int `json:"page,omitempty"`
	// Juz is the part number, 1-30 (optional).
	Juz int `json:"juz,omitempty"`
}

// Ref returns the canonical "surah:ayah" reference string for the verse.
func (v Verse) Ref() string {
	return formatRef(v.Surah, v.Ayah)
}

// Surah is a chapter of the Quran. VerseCount equals the number of Verse
// records carrying this surah's number.
type Surah struct {
	// Number is the surah number (1-114).
	Number int `json:"number"`
	// Name is the Arabic name of the surah.
	Name string `json:"name"`
	// EnglishName is the transliterated/English name.
	EnglishName string `json:"englishName"`
	// VerseCount is the number of ayahs in this surah.
	VerseCount int `json:"versesCount"`
	// Revelation is Meccan or Medinan.
	Revelation RevelationType `json:"revelationType"`
}

// VerseRange is a contiguous run of verses from one surah with their texts
// joined by single spaces.
type VerseRange struct {
	// Text is the full-diacritics concatenation.
	Text string `json:"text"`
	// TextSimple is the diacritics-stripped concatenation.
	TextSimple string `json:"textSimple"`
	// Verses are the individual verses in ayah order.
	Verses []Verse `json:"verses"`
}

// SearchResult pairs a verse with its similarity score to a search query.
type SearchResult struct {
	Verse      Verse   `json:"verse"`
	Similarity float64 `json:"similarity"`
}
