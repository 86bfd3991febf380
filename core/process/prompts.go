package process

import "github.com/hifzlab/isnad/core/quote"

// System prompt fragments that instruct a text generator to wrap every
// Quran quotation in a machine-recognizable tag. Feeding one of these to
// the generator makes its output extractable by the tagged strategy
// instead of relying on fuzzy detection.
const (
	promptXML = `When quoting the Quran, always wrap the quote in tags like this:
<quran ref="SURAH:AYAH"><ARABIC TEXT></quran>
For a range of verses use ref="SURAH:START-END".
Example: <quran ref="1:1">بسم الله الرحمن الرحيم</quran>
Quote the Arabic text exactly as you know it. Do not paraphrase verses.`

	promptMarkdown = "When quoting the Quran, always use a fenced block like this:\n" +
		"```quran ref=\"SURAH:AYAH\"\n<ARABIC TEXT>\n```\n" +
		"For a range of verses use ref=\"SURAH:START-END\".\n" +
		"Quote the Arabic text exactly as you know it. Do not paraphrase verses."

	promptBracket = `When quoting the Quran, always use this bracket form:
[[Q:SURAH:AYAH|<ARABIC TEXT>]]
For a range of verses use [[Q:SURAH:START-END|...]].
Example: [[Q:1:1|بسم الله الرحمن الرحيم]]
Quote the Arabic text exactly as you know it. Do not paraphrase verses.`

	promptMinimal = `When quoting the Quran, always follow the Arabic text with its
reference in parentheses, like this: <ARABIC TEXT> (SURAH:AYAH).
For a range of verses use (SURAH:START-END).
Quote the Arabic text exactly as you know it. Do not paraphrase verses.`
)

// SystemPrompt returns the generator instruction for the given tag format.
// Unknown formats fall back to the xml prompt.
func SystemPrompt(format quote.TagFormat) string {
	switch format {
	case quote.FormatMarkdown:
		return promptMarkdown
	case quote.FormatBracket:
		return promptBracket
	case quote.FormatMinimal:
		return promptMinimal
	default:
		return promptXML
	}
}
