package quran_test

import (
	"testing"

	"github.com/hifzlab/isnad/core/errors"
	"github.com/hifzlab/isnad/core/quran"
)

// TestLoadCanonical verifies loading from the canonical file names.
func TestLoadCanonical(t *testing.T) {
	c, err := quran.Load("testdata/canonical")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if _, ok := c.Verse(1, 1); !ok {
		t.Error("Verse(1, 1) not found after load")
	}
	if len(c.Surahs()) != 1 {
		t.Errorf("Surahs() = %d, want 1", len(c.Surahs()))
	}

	info := c.Info()
	if info.VerseChecksum == "" || info.SurahChecksum == "" {
		t.Error("load did not record corpus checksums")
	}
	if info.VerseCount != 2 || info.SurahCount != 1 {
		t.Errorf("Info counts = %d/%d, want 2/1", info.VerseCount, info.SurahCount)
	}
}

// TestLoadMinifiedVariant verifies fallback to <name>.min.json.
func TestLoadMinifiedVariant(t *testing.T) {
	c, err := quran.Load("testdata/min")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

// TestLoadXZVariant verifies fallback to the xz-compressed variant.
func TestLoadXZVariant(t *testing.T) {
	c, err := quran.Load("testdata/xz")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	v, ok := c.Verse(1, 2)
	if !ok {
		t.Fatal("Verse(1, 2) not found after xz load")
	}
	if v.TextSimple != "الحمد لله رب العالمين" {
		t.Errorf("TextSimple = %q", v.TextSimple)
	}
}

// TestLoadMissing verifies the fatal DataFileError for an absent corpus.
func TestLoadMissing(t *testing.T) {
	_, err := quran.Load(t.TempDir())
	if err == nil {
		t.Fatal("Load of empty directory succeeded")
	}

	var dfe *errors.DataFileError
	if !errors.As(err, &dfe) {
		t.Fatalf("error type = %T, want *errors.DataFileError", err)
	}
	if !errors.Is(err, errors.ErrNotFound) {
		t.Error("DataFileError does not unwrap to ErrNotFound")
	}
}

// TestLoadTanzilXML verifies the Tanzil XML corpus source.
func TestLoadTanzilXML(t *testing.T) {
	c, err := quran.LoadTanzilXML("testdata/tanzil.xml")
	if err != nil {
		t.Fatalf("LoadTanzilXML failed: %v", err)
	}

	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}

	v, ok := c.Verse(112, 1)
	if !ok {
		t.Fatal("Verse(112, 1) not found")
	}
	if v.Text != "قُلْ هُوَ ٱللَّهُ أَحَدٌ" {
		t.Errorf("Text = %q", v.Text)
	}
	// Simplified text is derived when the source has none.
	if v.TextSimple != "قل هو ٱلله أحد" {
		t.Errorf("TextSimple = %q", v.TextSimple)
	}

	s, ok := c.Surah(1)
	if !ok {
		t.Fatal("Surah(1) not found")
	}
	if s.Name != "الفاتحة" || s.VerseCount != 2 {
		t.Errorf("Surah(1) = %+v", s)
	}

	// IDs are assigned sequentially across suras.
	if c.VerseAt(2).ID != 3 || c.VerseAt(2).Surah != 112 {
		t.Errorf("VerseAt(2) = %+v, want third verse in sura 112", c.VerseAt(2))
	}
}

// TestLoadTanzilXMLMissing verifies the missing-file error path.
func TestLoadTanzilXMLMissing(t *testing.T) {
	if _, err := quran.LoadTanzilXML("testdata/absent.xml"); err == nil {
		t.Fatal("LoadTanzilXML of absent file succeeded")
	}
}

// TestChecksumVerify verifies BLAKE3 checksum computation and comparison.
func TestChecksumVerify(t *testing.T) {
	path := "testdata/canonical/quran-verses.json"

	sum, err := quran.Checksum(path)
	if err != nil {
		t.Fatalf("Checksum failed: %v", err)
	}
	if len(sum) != 64 {
		t.Errorf("checksum length = %d, want 64 hex chars", len(sum))
	}

	if err := quran.Verify(path, sum); err != nil {
		t.Errorf("Verify with matching digest failed: %v", err)
	}

	err = quran.Verify(path, "0000000000000000000000000000000000000000000000000000000000000000")
	if err == nil {
		t.Fatal("Verify with wrong digest succeeded")
	}
	var ce *errors.ChecksumError
	if !errors.As(err, &ce) {
		t.Errorf("error type = %T, want *errors.ChecksumError", err)
	}
}
