package analyze_test

import (
	"testing"

	"github.com/callcoach/callcoach/pkg/model"
	"github.com/callcoach/callcoach/pkg/usecase/analyze"
	"github.com/m-mizutani/gt"
)

func TestAssemble(t *testing.T) {
	utterances := []model.Utterance{
		{Topic: "Intro", SpeakerID: "s1", Text: "Hello"},
		{Topic: "Intro", SpeakerID: "s2", Text: "Hi there"},
		{Topic: "Pricing", SpeakerID: "s1", Text: "Let me walk you through pricing"},
	}
	parties := model.PartyMap{
		"s1": "Alice Example",
		"s2": "Bob Customer",
	}

	transcript := analyze.Assemble(utterances, parties)

	gt.Equal(t, transcript, model.Transcript{
		{Topic: "Intro", Speaker: "Alice Example", Text: "Hello"},
		{Topic: "Intro", Speaker: "Bob Customer", Text: "Hi there"},
		{Topic: "Pricing", Speaker: "Alice Example", Text: "Let me walk you through pricing"},
	})
}

func TestAssembleFallbackName(t *testing.T) {
	transcript := analyze.Assemble(
		[]model.Utterance{{Topic: "intro", SpeakerID: "42", Text: "hi"}},
		model.PartyMap{},
	)

	gt.Equal(t, transcript, model.Transcript{
		{Topic: "intro", Speaker: "User_42", Text: "hi"},
	})
}

func TestAssembleCompleteness(t *testing.T) {
	// Assembly is an order-preserving map, never a filter: every
	// utterance yields exactly one entry even with no party data.
	utterances := make([]model.Utterance, 0, 50)
	for i := 0; i < 50; i++ {
		utterances = append(utterances, model.Utterance{
			SpeakerID: "s1",
			Text:      "utterance",
		})
	}

	transcript := analyze.Assemble(utterances, nil)
	gt.A(t, transcript).Length(len(utterances))
}

func TestAssembleEmpty(t *testing.T) {
	transcript := analyze.Assemble(nil, model.PartyMap{"s1": "Alice"})
	gt.A(t, transcript).Length(0)
	gt.Equal(t, transcript.String(), "")
}

func TestAssembleIdempotent(t *testing.T) {
	utterances := []model.Utterance{
		{Topic: "Intro", SpeakerID: "s1", Text: "Hello"},
		{Topic: "", SpeakerID: "s9", Text: "Unattributed"},
	}
	parties := model.PartyMap{"s1": "Alice Example"}

	first := analyze.Assemble(utterances, parties)
	second := analyze.Assemble(utterances, parties)

	gt.Equal(t, first, second)
	gt.Equal(t, first.String(), second.String())
}

func TestTranscriptFormat(t *testing.T) {
	transcript := analyze.Assemble(
		[]model.Utterance{
			{Topic: "Intro", SpeakerID: "s1", Text: "Hello"},
			{Topic: "", SpeakerID: "s2", Text: "Hi"},
		},
		model.PartyMap{"s1": "Alice Example"},
	)

	gt.Equal(t, transcript.String(), "[Intro] Alice Example: Hello\n[] User_s2: Hi")
}
