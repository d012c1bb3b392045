package analyze

import "github.com/callcoach/callcoach/pkg/model"

// Assemble left-joins utterances against the party map into a
// speaker-labeled transcript. Pure: every utterance produces exactly
// one entry, in input order. A speaker without a party entry gets a
// name synthesized from its ID.
func Assemble(utterances []model.Utterance, parties model.PartyMap) model.Transcript {
	transcript := make(model.Transcript, 0, len(utterances))
	for _, u := range utterances {
		speaker, ok := parties[u.SpeakerID]
		if !ok {
			speaker = "User_" + u.SpeakerID
		}
		transcript = append(transcript, model.Entry{
			Topic:   u.Topic,
			Speaker: speaker,
			Text:    u.Text,
		})
	}
	return transcript
}
