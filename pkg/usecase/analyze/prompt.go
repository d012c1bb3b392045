package analyze

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/callcoach/callcoach/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

//go:embed prompt/analyze.md
var analyzePromptRaw string

var analyzePromptTmpl = template.Must(template.New("analyze").Parse(analyzePromptRaw))

// maxPromptBytes bounds the rendered prompt. At roughly four bytes per
// token this stays well inside the default model's context window.
// Oversized input fails fast instead of being truncated.
const maxPromptBytes = 2 << 20

// BuildPrompt renders the analysis instruction block embedding the
// coaching guide, the ideal pitch and the transcript verbatim.
// Deterministic: same inputs always yield the same prompt.
func BuildPrompt(transcript, idealPitch, coachingGuide string) (string, error) {
	var buf bytes.Buffer
	if err := analyzePromptTmpl.Execute(&buf, map[string]any{
		"CoachingGuide": coachingGuide,
		"IdealPitch":    idealPitch,
		"Transcript":    transcript,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to execute analysis prompt template")
	}

	if buf.Len() > maxPromptBytes {
		return "", goerr.Wrap(model.ErrPromptTooLarge, "refusing to truncate analysis input",
			goerr.V("size", buf.Len()),
			goerr.V("limit", maxPromptBytes))
	}

	return buf.String(), nil
}
