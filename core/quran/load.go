package quran

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/hifzlab/isnad/core/errors"
)

// Canonical corpus data file names. The loader also accepts a minified
// variant (<name>.min.json) and an xz-compressed variant (<name>.json.xz)
// when the canonical file is absent.
const (
	VerseFileName = "quran-verses.json"
	SurahFileName = "quran-surahs.json"
)

// Load reads the corpus from the canonical data files in dir.
// A missing verse or surah file is fatal: there is no degraded mode.
func Load(dir string) (*Corpus, error) {
	versesPath, err := resolveDataFile(dir, VerseFileName)
	if err != nil {
		return nil, err
	}
	surahsPath, err := resolveDataFile(dir, SurahFileName)
	if err != nil {
		return nil, err
	}
	return LoadFiles(versesPath, surahsPath)
}

// LoadFiles reads the corpus from explicit verse and surah file paths.
// Either path may end in .xz, in which case the file is decompressed while
// reading. BLAKE3 checksums of both files are recorded on the corpus Info.
func LoadFiles(versesPath, surahsPath string) (*Corpus, error) {
	var verses []Verse
	if err := readJSONFile(versesPath, &verses); err != nil {
		return nil, err
	}

	var surahs []Surah
	if err := readJSONFile(surahsPath, &surahs); err != nil {
		return nil, err
	}

	verseSum, err := Checksum(versesPath)
	if err != nil {
		return nil, err
	}
	surahSum, err := Checksum(surahsPath)
	if err != nil {
		return nil, err
	}

	c := New(verses, surahs)
	c.info.VerseFile = versesPath
	c.info.SurahFile = surahsPath
	c.info.VerseChecksum = verseSum
	c.info.SurahChecksum = surahSum
	return c, nil
}

// resolveDataFile finds a data file in dir, trying the canonical name first,
// then the minified variant, then the xz-compressed variant.
func resolveDataFile(dir, name string) (string, error) {
	candidates := []string{
		name,
		strings.TrimSuffix(name, ".json") + ".min.json",
		name + ".xz",
	}

	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", errors.NewDataFile(name, dir)
}

// readJSONFile decodes a JSON data file into v, transparently decompressing
// .xz files.
func readJSONFile(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.NewIO("open", path, err)
	}
	defer f.Close()

	var decoder *json.Decoder
	if strings.HasSuffix(path, ".xz") {
		r, err := xz.NewReader(f)
		if err != nil {
			return errors.NewParse("xz", path, err.Error())
		}
		decoder = json.NewDecoder(r)
	} else {
		decoder = json.NewDecoder(f)
	}

	if err := decoder.Decode(v); err != nil {
		return errors.NewParse("JSON", path, err.Error())
	}
	return nil
}
