package analyze_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/callcoach/callcoach/pkg/model"
	"github.com/callcoach/callcoach/pkg/usecase/analyze"
	"github.com/m-mizutani/gt"
)

func TestBuildPrompt(t *testing.T) {
	transcript := "[Intro] Alice Example: Hello\n[Pricing] Bob Customer: How much?"
	pitch := "Key point one: seamless integration"
	guide := "Score delivery from 1 to 10"

	prompt, err := analyze.BuildPrompt(transcript, pitch, guide)
	gt.NoError(t, err)

	// Reference material and transcript are embedded verbatim.
	gt.S(t, prompt).Contains(transcript)
	gt.S(t, prompt).Contains(pitch)
	gt.S(t, prompt).Contains(guide)

	// The required output schema is spelled out.
	gt.S(t, prompt).Contains("didWell")
	gt.S(t, prompt).Contains("improvements")
	gt.S(t, prompt).Contains("finalScore")
	gt.S(t, prompt).Contains("coachingTips")
	gt.S(t, prompt).Contains("one JSON object")
}

func TestBuildPromptDeterministic(t *testing.T) {
	first, err := analyze.BuildPrompt("transcript", "pitch", "guide")
	gt.NoError(t, err)
	second, err := analyze.BuildPrompt("transcript", "pitch", "guide")
	gt.NoError(t, err)

	gt.Equal(t, first, second)
}

func TestBuildPromptTooLarge(t *testing.T) {
	transcript := strings.Repeat("a", 3<<20)

	_, err := analyze.BuildPrompt(transcript, "pitch", "guide")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrPromptTooLarge))
}
