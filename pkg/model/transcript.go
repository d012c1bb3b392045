package model

import (
	"fmt"
	"strings"
)

// CallID identifies one recorded call in the call recording service.
// It is opaque to this tool; the service assigns it.
type CallID string

// Utterance is a single spoken sentence, attributed to a topic section
// and a speaker ID. The order of utterances is chronological and must
// be preserved through the whole pipeline.
type Utterance struct {
	Topic     string
	SpeakerID string
	Text      string
}

// PartyMap maps a speaker ID to the participant's display name.
type PartyMap map[string]string

// Entry is one speaker-labeled line of an assembled transcript.
type Entry struct {
	Topic   string
	Speaker string
	Text    string
}

func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s: %s", e.Topic, e.Speaker, e.Text)
}

// Transcript is the ordered, speaker-labeled merge of utterances and
// parties for one call.
type Transcript []Entry

// String renders the transcript one entry per line, the format consumed
// by the analysis prompt and printed for debugging.
func (t Transcript) String() string {
	lines := make([]string, 0, len(t))
	for _, e := range t {
		lines = append(lines, e.String())
	}
	return strings.Join(lines, "\n")
}
