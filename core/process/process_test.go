package process_test

import (
	"strings"
	"testing"

	"github.com/hifzlab/isnad/core/match"
	"github.com/hifzlab/isnad/core/process"
	"github.com/hifzlab/isnad/core/quote"
	"github.com/hifzlab/isnad/internal/corpustest"
)

// basmalaPlain is 1:1 without diacritics, a typical imprecise quotation.
const basmalaPlain = "بسم الله الرحمن الرحيم"

func newProcessor(t *testing.T) *process.Processor {
	t.Helper()
	engine := match.New(corpustest.Corpus(), match.DefaultOptions())
	return process.New(engine, process.DefaultOptions())
}

// TestProcessTaggedExact verifies a correctly tagged, letter-perfect quote
// passes through untouched.
func TestProcessTaggedExact(t *testing.T) {
	p := newProcessor(t)
	text := `Opening: <quran ref="1:1">` + corpustest.Fatiha1 + `</quran> indeed.`

	out := p.Process(text)

	if len(out.Quotes) != 1 {
		t.Fatalf("got %d quotes, want 1", len(out.Quotes))
	}
	q := out.Quotes[0]
	if !q.IsValid || q.WasCorrected {
		t.Errorf("quote valid = %v, corrected = %v, want valid and uncorrected", q.IsValid, q.WasCorrected)
	}
	if q.Reference != "1:1" {
		t.Errorf("reference = %q, want 1:1", q.Reference)
	}
	if q.Strategy != quote.Tagged {
		t.Errorf("strategy = %v, want tagged", q.Strategy)
	}
	if q.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", q.Confidence)
	}
	if !out.AllValid {
		t.Error("AllValid = false, want true")
	}
	if out.CorrectedText != text {
		t.Errorf("corrected text changed:\n%s", out.CorrectedText)
	}
}

// TestProcessTaggedCorrected verifies an imprecise tagged quote is replaced
// with a re-tagged canonical form.
func TestProcessTaggedCorrected(t *testing.T) {
	p := newProcessor(t)
	text := `<quran ref="1:1">` + basmalaPlain + `</quran>`

	out := p.Process(text)

	if len(out.Quotes) != 1 {
		t.Fatalf("got %d quotes, want 1", len(out.Quotes))
	}
	q := out.Quotes[0]
	if !q.IsValid {
		t.Error("quote invalid, want valid")
	}
	if !q.WasCorrected {
		t.Fatal("quote not corrected")
	}
	if q.Corrected != corpustest.Fatiha1 {
		t.Errorf("corrected = %q, want canonical 1:1", q.Corrected)
	}
	if out.AllValid {
		t.Error("AllValid = true, want false after correction")
	}

	want := `<quran ref="1:1">` + corpustest.Fatiha1 + `</quran>`
	if out.CorrectedText != want {
		t.Errorf("corrected text = %q, want %q", out.CorrectedText, want)
	}
}

// TestProcessTaggedRefMismatch verifies a quote tagged with the wrong
// reference is reported invalid but still re-tagged with the discovered one.
func TestProcessTaggedRefMismatch(t *testing.T) {
	p := newProcessor(t)
	text := `<quran ref="1:2">` + basmalaPlain + `</quran>`

	out := p.Process(text)

	if len(out.Quotes) != 1 {
		t.Fatalf("got %d quotes, want 1", len(out.Quotes))
	}
	q := out.Quotes[0]
	if q.IsValid {
		t.Error("mismatched reference reported valid")
	}
	if q.Reference != "1:1" {
		t.Errorf("reference = %q, want discovered 1:1", q.Reference)
	}
	if !strings.Contains(out.CorrectedText, `ref="1:1"`) {
		t.Errorf("corrected text not re-tagged with 1:1:\n%s", out.CorrectedText)
	}
	if out.AllValid {
		t.Error("AllValid = true, want false")
	}
}

// TestProcessTaggedRange verifies range-tagged quotes go through range
// analysis and are corrected to the canonical concatenation.
func TestProcessTaggedRange(t *testing.T) {
	p := newProcessor(t)
	canonical := strings.Join([]string{
		corpustest.Ikhlas1, corpustest.Ikhlas2, corpustest.Ikhlas3, corpustest.Ikhlas4,
	}, " ")

	t.Run("literal", func(t *testing.T) {
		out := p.Process(`<quran ref="112:1-4">` + canonical + `</quran>`)
		if len(out.Quotes) != 1 {
			t.Fatalf("got %d quotes, want 1", len(out.Quotes))
		}
		q := out.Quotes[0]
		if !q.IsValid || q.WasCorrected {
			t.Errorf("valid = %v, corrected = %v, want valid and uncorrected", q.IsValid, q.WasCorrected)
		}
		if q.Confidence != 1.0 {
			t.Errorf("confidence = %v, want 1.0", q.Confidence)
		}
		if q.Reference != "112:1-4" {
			t.Errorf("reference = %q, want 112:1-4", q.Reference)
		}
	})

	t.Run("normalized", func(t *testing.T) {
		plain := "قل هو الله احد الله الصمد لم يلد ولم يولد ولم يكن له كفوا احد"
		out := p.Process(`<quran ref="112:1-4">` + plain + `</quran>`)
		if len(out.Quotes) != 1 {
			t.Fatalf("got %d quotes, want 1", len(out.Quotes))
		}
		q := out.Quotes[0]
		if !q.IsValid {
			t.Error("normalized range quote invalid")
		}
		if !q.WasCorrected || q.Corrected != canonical {
			t.Errorf("corrected = %q, want canonical concatenation", q.Corrected)
		}
		if !strings.Contains(out.CorrectedText, canonical) {
			t.Error("corrected text does not carry canonical concatenation")
		}
	})
}

// TestProcessContextual verifies an attribution phrase promotes the Arabic
// that follows it, and that the bare text is corrected in place.
func TestProcessContextual(t *testing.T) {
	p := newProcessor(t)
	text := "Allah says: " + basmalaPlain + " which opens it."

	out := p.Process(text)

	if len(out.Quotes) != 1 {
		t.Fatalf("got %d quotes, want 1", len(out.Quotes))
	}
	q := out.Quotes[0]
	if q.Strategy != quote.Contextual {
		t.Errorf("strategy = %v, want contextual", q.Strategy)
	}
	if !q.IsValid || !q.WasCorrected {
		t.Errorf("valid = %v, corrected = %v, want both", q.IsValid, q.WasCorrected)
	}

	want := "Allah says: " + corpustest.Fatiha1 + " which opens it."
	if out.CorrectedText != want {
		t.Errorf("corrected text = %q, want %q", out.CorrectedText, want)
	}
}

// TestProcessContextualUnmatchedDropped verifies a triggered span that
// matches nothing is dropped from the result set.
func TestProcessContextualUnmatchedDropped(t *testing.T) {
	p := newProcessor(t)
	out := p.Process("Allah says: العلم نور والجهل ظلام دائما ابدا")

	if len(out.Quotes) != 0 {
		t.Fatalf("got %d quotes, want 0: %+v", len(out.Quotes), out.Quotes)
	}
	if !out.AllValid {
		t.Error("AllValid = false with no retained quotes")
	}
}

// TestProcessUntaggedAlongsideTagged verifies a tagged quote and the same
// verse appearing untagged elsewhere are both detected independently.
func TestProcessUntaggedAlongsideTagged(t *testing.T) {
	p := newProcessor(t)
	text := `<quran ref="1:1">` + corpustest.Fatiha1 + `</quran> and later in prose ` +
		corpustest.Fatiha1 + ` closes the page.`

	out := p.Process(text)

	if len(out.Quotes) != 2 {
		t.Fatalf("got %d quotes, want 2: %+v", len(out.Quotes), out.Quotes)
	}
	if out.Quotes[0].Strategy != quote.Tagged {
		t.Errorf("first strategy = %v, want tagged", out.Quotes[0].Strategy)
	}
	if out.Quotes[1].Strategy != quote.Fuzzy {
		t.Errorf("second strategy = %v, want fuzzy", out.Quotes[1].Strategy)
	}
	if len(out.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(out.Warnings))
	}
	if !strings.Contains(out.Warnings[0], "1:1") {
		t.Errorf("warning lacks reference: %q", out.Warnings[0])
	}
	if !out.AllValid {
		t.Error("AllValid = false, want true for two exact quotes")
	}
}

// TestProcessScanUntaggedDisabled verifies the fuzzy scan can be turned off.
func TestProcessScanUntaggedDisabled(t *testing.T) {
	opts := process.DefaultOptions()
	opts.ScanUntagged = false
	engine := match.New(corpustest.Corpus(), match.DefaultOptions())
	p := process.New(engine, opts)

	out := p.Process("Just prose around " + corpustest.Fatiha1 + " with no tag.")

	if len(out.Quotes) != 0 {
		t.Fatalf("got %d quotes with scan disabled, want 0", len(out.Quotes))
	}
	if len(out.Warnings) != 0 {
		t.Fatalf("got %d warnings with scan disabled, want 0", len(out.Warnings))
	}
}

// TestProcessAutoCorrectOff verifies analyses still carry corrections while
// the document is left untouched.
func TestProcessAutoCorrectOff(t *testing.T) {
	opts := process.DefaultOptions()
	opts.AutoCorrect = false
	engine := match.New(corpustest.Corpus(), match.DefaultOptions())
	p := process.New(engine, opts)

	text := `<quran ref="1:1">` + basmalaPlain + `</quran>`
	out := p.Process(text)

	if out.CorrectedText != text {
		t.Errorf("document modified with auto-correct off:\n%s", out.CorrectedText)
	}
	if len(out.Quotes) != 1 || !out.Quotes[0].WasCorrected {
		t.Fatalf("analysis lost the correction: %+v", out.Quotes)
	}
	if out.Quotes[0].Corrected != corpustest.Fatiha1 {
		t.Errorf("corrected = %q, want canonical text", out.Quotes[0].Corrected)
	}
}

// TestQuickValidate verifies the summary report.
func TestQuickValidate(t *testing.T) {
	engine := match.New(corpustest.Corpus(), match.DefaultOptions())

	t.Run("imprecise quote", func(t *testing.T) {
		s := process.QuickValidate(engine, `<quran ref="1:1">`+basmalaPlain+`</quran>`)
		if !s.HasQuranContent {
			t.Error("HasQuranContent = false, want true")
		}
		if s.AllValid {
			t.Error("AllValid = true for an imprecise quote")
		}
		if len(s.Issues) != 1 || !strings.Contains(s.Issues[0], "1:1") {
			t.Errorf("issues = %q, want one naming 1:1", s.Issues)
		}
	})

	t.Run("no quran content", func(t *testing.T) {
		s := process.QuickValidate(engine, "Plain English prose only.")
		if s.HasQuranContent {
			t.Error("HasQuranContent = true, want false")
		}
		if !s.AllValid {
			t.Error("AllValid = false, want true")
		}
		if len(s.Issues) != 0 {
			t.Errorf("issues = %q, want none", s.Issues)
		}
	})
}

// TestValidateQuote verifies single-quote checking with and without an
// expected reference.
func TestValidateQuote(t *testing.T) {
	p := newProcessor(t)

	t.Run("exact", func(t *testing.T) {
		check := p.ValidateQuote(corpustest.Ikhlas1, "")
		if !check.IsValid {
			t.Error("exact quote invalid")
		}
		if check.ActualRef != "112:1" {
			t.Errorf("actual ref = %q, want 112:1", check.ActualRef)
		}
		if check.CorrectText != "" {
			t.Errorf("correct text = %q, want empty for exact match", check.CorrectText)
		}
	})

	t.Run("imprecise", func(t *testing.T) {
		check := p.ValidateQuote("قل هو الله احد", "112:1")
		if !check.IsValid {
			t.Error("normalized quote invalid")
		}
		if check.CorrectText != corpustest.Ikhlas1 {
			t.Errorf("correct text = %q, want canonical 112:1", check.CorrectText)
		}
	})

	t.Run("wrong reference", func(t *testing.T) {
		check := p.ValidateQuote(corpustest.Ikhlas1, "1:1")
		if check.IsValid {
			t.Error("quote valid against the wrong reference")
		}
		if check.ActualRef != "112:1" {
			t.Errorf("actual ref = %q, want 112:1", check.ActualRef)
		}
	})
}

// TestSystemPrompt verifies each tag format has a distinct instruction and
// unknown formats fall back to xml.
func TestSystemPrompt(t *testing.T) {
	tests := []struct {
		format quote.TagFormat
		marker string
	}{
		{quote.FormatXML, "<quran"},
		{quote.FormatMarkdown, "```quran"},
		{quote.FormatBracket, "[[Q:"},
		{quote.FormatMinimal, "(SURAH:AYAH)"},
		{quote.TagFormat("bogus"), "<quran"},
	}
	for _, tt := range tests {
		if got := process.SystemPrompt(tt.format); !strings.Contains(got, tt.marker) {
			t.Errorf("SystemPrompt(%q) lacks %q", tt.format, tt.marker)
		}
	}
}
