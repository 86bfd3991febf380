// Command isnad validates Quran quotations against a canonical corpus.
// It provides commands for checking single quotes, correcting whole
// documents, inspecting the corpus, and serving the REST API.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/hifzlab/isnad/core/match"
	"github.com/hifzlab/isnad/core/process"
	"github.com/hifzlab/isnad/core/quote"
	"github.com/hifzlab/isnad/core/quran"
	"github.com/hifzlab/isnad/internal/api"
	"github.com/hifzlab/isnad/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for isnad.
var CLI struct {
	// Global flags
	Data   string `name:"data" short:"d" help:"Corpus data directory" default:"data" type:"path"`
	Tanzil string `name:"tanzil" help:"Load the corpus from a Tanzil XML file instead of the data directory" type:"path"`
	Quiet  bool   `name:"quiet" short:"q" help:"Only log warnings and errors"`

	// Command groups (noun-first organization)
	Quote   QuoteGroup  `cmd:"" help:"Quote operations (validate, process, detect)"`
	Corpus  CorpusGroup `cmd:"" help:"Corpus operations (verse, search, surahs, checksum)"`
	Prompt  PromptCmd   `cmd:"" help:"Print the generator instruction for a tag format"`
	API     APICmd      `cmd:"" help:"Start REST API server"`
	Version VersionCmd  `cmd:"" help:"Print version information"`
}

// QuoteGroup contains quote validation operations.
type QuoteGroup struct {
	Validate ValidateCmd `cmd:"" help:"Validate a single quote against the corpus"`
	Process  ProcessCmd  `cmd:"" help:"Validate and correct every quote in a document"`
	Detect   DetectCmd   `cmd:"" help:"Scan free text for verse content"`
}

// CorpusGroup contains corpus inspection operations.
type CorpusGroup struct {
	Verse    VerseCmd    `cmd:"" help:"Print a verse or verse range"`
	Search   SearchCmd   `cmd:"" help:"Search the corpus by similarity"`
	Surahs   SurahsCmd   `cmd:"" help:"List all surahs"`
	Checksum ChecksumCmd `cmd:"" help:"Print or verify the BLAKE3 checksum of a data file"`
}

// loadCorpus builds the corpus from the global source flags.
func loadCorpus() (*quran.Corpus, error) {
	if CLI.Tanzil != "" {
		return quran.LoadTanzilXML(CLI.Tanzil)
	}
	return quran.Load(CLI.Data)
}

// ValidateCmd validates one quote.
type ValidateCmd struct {
	Text      string  `arg:"" help:"Quoted Arabic text"`
	Ref       string  `name:"ref" short:"r" help:"Expected reference (surah:ayah or surah:start-end)"`
	Threshold float64 `name:"threshold" help:"Fuzzy match threshold" default:"0.8"`
	JSON      bool    `name:"json" help:"Output as JSON"`
}

func (c *ValidateCmd) Run() error {
	corpus, err := loadCorpus()
	if err != nil {
		return err
	}

	opts := match.DefaultOptions()
	opts.FuzzyThreshold = c.Threshold
	engine := match.New(corpus, opts)

	// A range reference goes through range analysis rather than the
	// single-verse pipeline.
	if c.Ref != "" {
		if ref, err := quote.ParseRef(c.Ref); err == nil && ref.IsRange {
			return c.runRange(engine, ref)
		}
	}

	result := engine.Validate(c.Text)
	refMismatch := c.Ref != "" && result.Reference != "" && result.Reference != c.Ref

	if c.JSON {
		out := result
		if refMismatch {
			out.IsValid = false
		}
		return printJSON(out)
	}

	fmt.Printf("Match:      %s\n", result.Kind)
	fmt.Printf("Confidence: %.2f\n", result.Confidence)
	if result.Reference != "" {
		fmt.Printf("Reference:  %s\n", result.Reference)
	}
	switch {
	case refMismatch:
		fmt.Printf("INVALID: quote matches %s, not %s\n", result.Reference, c.Ref)
	case result.IsValid:
		fmt.Println("Valid quote.")
	default:
		fmt.Println("INVALID: no authentic match found.")
	}

	if result.Verse != nil && result.Kind != match.Exact {
		fmt.Printf("Canonical:  %s\n", result.Verse.Text)
	}
	for _, d := range result.Differences {
		fmt.Printf("  diff at %d: %q should be %q\n", d.Position, d.Input, d.Correct)
	}
	for _, s := range result.Suggestions {
		fmt.Printf("  suggestion %s (%.2f): %s\n", s.Reference, s.Confidence, s.Verse.Text)
	}
	return nil
}

func (c *ValidateCmd) runRange(engine *match.Engine, ref quote.Ref) error {
	a := engine.AnalyzeRange(c.Text, ref.Surah, ref.StartAyah, ref.EndAyah)

	if c.JSON {
		return printJSON(a)
	}

	fmt.Printf("Range:      %s\n", ref)
	fmt.Printf("Confidence: %.2f\n", a.Confidence)
	if a.IsValid {
		fmt.Println("Valid quote.")
	} else {
		fmt.Println("INVALID: text does not match the range.")
	}
	if a.WasCorrected {
		fmt.Printf("Canonical:  %s\n", a.Corrected)
	}
	return nil
}

// ProcessCmd validates and corrects a whole document.
type ProcessCmd struct {
	Path          string  `arg:"" optional:"" help:"Document to process (default: stdin)" type:"existingfile"`
	Format        string  `name:"format" short:"f" help:"Tag format (xml, markdown, bracket, minimal)" default:"xml"`
	Output        string  `name:"output" short:"o" help:"Write corrected document to file (default: stdout)" type:"path"`
	NoCorrect     bool    `name:"no-correct" help:"Report problems without rewriting the document"`
	NoScan        bool    `name:"no-scan" help:"Skip the untagged fuzzy scan"`
	MinConfidence float64 `name:"min-confidence" help:"Confidence floor for untagged detections" default:"0.85"`
	JSON          bool    `name:"json" help:"Output the full analysis as JSON"`
}

func (c *ProcessCmd) Run() error {
	format := quote.TagFormat(c.Format)
	if !format.Valid() {
		return fmt.Errorf("unknown tag format: %s", c.Format)
	}

	text, err := readInput(c.Path)
	if err != nil {
		return err
	}

	corpus, err := loadCorpus()
	if err != nil {
		return err
	}

	opts := process.Options{
		AutoCorrect:   !c.NoCorrect,
		MinConfidence: c.MinConfidence,
		ScanUntagged:  !c.NoScan,
		TagFormat:     format,
	}
	processor := process.New(match.New(corpus, match.DefaultOptions()), opts)
	out := processor.Process(text)

	if c.JSON {
		return printJSON(out)
	}

	for _, q := range out.Quotes {
		status := "ok"
		switch {
		case !q.IsValid:
			status = "INVALID"
		case q.WasCorrected:
			status = "corrected"
		}
		fmt.Fprintf(os.Stderr, "%-9s %-10s %s (%.2f)\n", status, q.Strategy, q.Reference, q.Confidence)
	}
	for _, w := range out.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if c.Output != "" {
		return os.WriteFile(c.Output, []byte(out.CorrectedText), 0o644)
	}
	fmt.Print(out.CorrectedText)
	if !strings.HasSuffix(out.CorrectedText, "\n") {
		fmt.Println()
	}
	return nil
}

// DetectCmd scans free text for verse content.
type DetectCmd struct {
	Text      string `arg:"" optional:"" help:"Text to scan (default: stdin)"`
	MinLength int    `name:"min-length" help:"Minimum segment length in characters" default:"10"`
	JSON      bool   `name:"json" help:"Output as JSON"`
}

func (c *DetectCmd) Run() error {
	text := c.Text
	if text == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	corpus, err := loadCorpus()
	if err != nil {
		return err
	}

	opts := match.DefaultOptions()
	opts.MinDetectionLength = c.MinLength
	detection := match.New(corpus, opts).DetectAndValidate(text)

	if c.JSON {
		return printJSON(detection)
	}

	if !detection.Detected {
		fmt.Println("No verse content detected.")
		return nil
	}
	for _, seg := range detection.Segments {
		r := seg.Result
		fmt.Printf("[%d:%d] %s  %s %.2f", seg.Start, seg.End, seg.Text, r.Kind, r.Confidence)
		if r.Reference != "" {
			fmt.Printf("  %s", r.Reference)
		}
		fmt.Println()
	}
	return nil
}

// VerseCmd prints a verse or verse range.
type VerseCmd struct {
	Surah int    `arg:"" help:"Surah number"`
	Ayah  string `arg:"" help:"Ayah number or start-end range"`
	JSON  bool   `name:"json" help:"Output as JSON"`
}

func (c *VerseCmd) Run() error {
	corpus, err := loadCorpus()
	if err != nil {
		return err
	}

	if start, end, ok := splitRange(c.Ayah); ok {
		vr, found := corpus.Range(c.Surah, start, end)
		if !found {
			return fmt.Errorf("range %d:%s not found", c.Surah, c.Ayah)
		}
		if c.JSON {
			return printJSON(vr)
		}
		for _, v := range vr.Verses {
			fmt.Printf("%s  %s\n", v.Ref(), v.Text)
		}
		return nil
	}

	var ayah int
	if _, err := fmt.Sscanf(c.Ayah, "%d", &ayah); err != nil {
		return fmt.Errorf("ayah must be a number or start-end range: %s", c.Ayah)
	}

	verse, found := corpus.Verse(c.Surah, ayah)
	if !found {
		return fmt.Errorf("verse %d:%d not found", c.Surah, ayah)
	}
	if c.JSON {
		return printJSON(verse)
	}
	fmt.Printf("%s  %s\n", verse.Ref(), verse.Text)
	return nil
}

func splitRange(s string) (start, end int, ok bool) {
	first, rest, found := strings.Cut(s, "-")
	if !found {
		return 0, 0, false
	}
	if _, err := fmt.Sscanf(first, "%d", &start); err != nil {
		return 0, 0, false
	}
	if _, err := fmt.Sscanf(rest, "%d", &end); err != nil {
		return 0, 0, false
	}
	return start, end, true
}

// SearchCmd searches the corpus by similarity.
type SearchCmd struct {
	Query string `arg:"" help:"Arabic text to search for"`
	Limit int    `name:"limit" short:"n" help:"Maximum results" default:"10"`
	JSON  bool   `name:"json" help:"Output as JSON"`
}

func (c *SearchCmd) Run() error {
	corpus, err := loadCorpus()
	if err != nil {
		return err
	}

	results := corpus.Search(c.Query, c.Limit)
	if c.JSON {
		return printJSON(results)
	}

	if len(results) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for _, r := range results {
		fmt.Printf("%.2f  %s  %s\n", r.Similarity, r.Verse.Ref(), r.Verse.Text)
	}
	return nil
}

// SurahsCmd lists all surahs.
type SurahsCmd struct {
	JSON bool `name:"json" help:"Output as JSON"`
}

func (c *SurahsCmd) Run() error {
	corpus, err := loadCorpus()
	if err != nil {
		return err
	}

	surahs := corpus.Surahs()
	if c.JSON {
		return printJSON(surahs)
	}

	for _, s := range surahs {
		fmt.Printf("%3d  %-20s %-12s %3d verses  %s\n",
			s.Number, s.EnglishName, s.Revelation, s.VerseCount, s.Name)
	}
	return nil
}

// ChecksumCmd prints or verifies the BLAKE3 checksum of a data file.
type ChecksumCmd struct {
	Path   string `arg:"" help:"File to hash" type:"existingfile"`
	Verify string `name:"verify" help:"Expected hex digest; fail if it does not match"`
}

func (c *ChecksumCmd) Run() error {
	if c.Verify != "" {
		if err := quran.Verify(c.Path, c.Verify); err != nil {
			return err
		}
		fmt.Println("OK")
		return nil
	}

	sum, err := quran.Checksum(c.Path)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s\n", sum, c.Path)
	return nil
}

// PromptCmd prints the generator instruction for a tag format.
type PromptCmd struct {
	Format string `arg:"" optional:"" help:"Tag format (xml, markdown, bracket, minimal)" default:"xml"`
}

func (c *PromptCmd) Run() error {
	format := quote.TagFormat(c.Format)
	if !format.Valid() {
		return fmt.Errorf("unknown tag format: %s", c.Format)
	}
	fmt.Println(process.SystemPrompt(format))
	return nil
}

// APICmd starts the REST API server.
type APICmd struct {
	Port      int      `help:"HTTP server port" default:"8081"`
	APIKey    string   `name:"api-key" help:"Require this API key on all requests" env:"ISNAD_API_KEY"`
	RateLimit int      `name:"rate-limit" help:"Requests per minute per client (0 = disabled)"`
	Origins   []string `name:"origins" help:"CORS allowed origins (default: allow all)"`
}

func (c *APICmd) Run() error {
	corpus, err := loadCorpus()
	if err != nil {
		return err
	}

	cfg := api.Config{
		Port:              c.Port,
		RateLimitRequests: c.RateLimit,
		AllowedOrigins:    c.Origins,
		Auth: api.AuthConfig{
			Enabled: c.APIKey != "",
			APIKey:  c.APIKey,
		},
	}

	server := api.New(cfg, corpus, match.DefaultOptions(), process.DefaultOptions())
	return server.Start()
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("isnad version %s\n", version)
	return nil
}

// Helper functions

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("isnad"),
		kong.Description("Quran quote verification against a canonical corpus"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	if CLI.Quiet {
		logging.InitLogger(logging.LevelWarn, logging.FormatText)
	} else {
		logging.InitLogger(logging.LevelInfo, logging.FormatText)
	}

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
