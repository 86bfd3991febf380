package quran

import (
	"os"
	"strconv"

	"github.com/antchfx/xmlquery"

	"github.com/hifzlab/isnad/core/arabic"
	"github.com/hifzlab/isnad/core/errors"
)

// LoadTanzilXML reads a corpus from a Tanzil-format XML distribution
// (quran-uthmani.xml and friends): a quran root holding sura elements with
// index and name attributes, each holding aya elements with index and text
// attributes.
//
// Surah records are reconstructed from the sura attributes; English names and
// revelation types are not present in the Tanzil format and are left empty.
// Simplified verse text is derived by stripping diacritics.
func LoadTanzilXML(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewDataFile(path, "")
	}
	defer f.Close()

	doc, err := xmlquery.Parse(f)
	if err != nil {
		return nil, errors.NewParse("Tanzil XML", path, err.Error())
	}

	suraNodes := xmlquery.Find(doc, "//sura")
	if len(suraNodes) == 0 {
		return nil, errors.NewParse("Tanzil XML", path, "no sura elements")
	}

	var verses []Verse
	var surahs []Surah
	id := 0

	for _, sura := range suraNodes {
		number, err := strconv.Atoi(sura.SelectAttr("index"))
		if err != nil {
			return nil, errors.NewParse("Tanzil XML", path, "sura index is not a number: "+sura.SelectAttr("index"))
		}

		ayaNodes := xmlquery.Find(sura, "aya")
		for _, aya := range ayaNodes {
			ayah, err := strconv.Atoi(aya.SelectAttr("index"))
			if err != nil {
				return nil, errors.NewParse("Tanzil XML", path, "aya index is not a number: "+aya.SelectAttr("index"))
			}
			text := aya.SelectAttr("text")

			id++
			verses = append(verses, Verse{
				ID:         id,
				Surah:      number,
				Ayah:       ayah,
				Text:       text,
				TextSimple: arabic.RemoveDiacritics(text),
			})
		}

		surahs = append(surahs, Surah{
			Number:     number,
			Name:       sura.SelectAttr("name"),
			VerseCount: len(ayaNodes),
		})
	}

	c := New(verses, surahs)
	c.info.VerseFile = path

	sum, err := Checksum(path)
	if err != nil {
		return nil, err
	}
	c.info.VerseChecksum = sum
	return c, nil
}
