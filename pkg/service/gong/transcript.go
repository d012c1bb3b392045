package gong

import (
	"context"
	"encoding/json"

	"github.com/callcoach/callcoach/pkg/model"
	"github.com/callcoach/callcoach/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

const transcriptPath = "/v2/calls/transcript"

type transcriptRequest struct {
	Filter callFilter `json:"filter"`
}

type transcriptResponse struct {
	CallTranscripts []struct {
		Transcript []struct {
			Topic     string `json:"topic"`
			SpeakerID string `json:"speakerId"`
			Sentences []struct {
				Text string `json:"text"`
			} `json:"sentences"`
		} `json:"transcript"`
	} `json:"callTranscripts"`
}

// GetTranscript fetches the transcript of a call and flattens its topic
// sections into one chronological utterance sequence. Sentence and
// section order in the response is preserved; sentences with empty text
// are dropped. A response without any call transcript entry means the
// call has no transcript yet and yields an empty slice.
func (c *Client) GetTranscript(ctx context.Context, callID model.CallID) ([]model.Utterance, error) {
	body, err := c.post(ctx, transcriptPath, transcriptRequest{
		Filter: callFilter{CallIDs: []model.CallID{callID}},
	})
	if err != nil {
		return nil, err
	}

	var resp transcriptResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, goerr.Wrap(model.ErrParse, "malformed transcript response",
			goerr.V("call_id", callID),
			goerr.V("cause", err.Error()))
	}

	if len(resp.CallTranscripts) == 0 {
		logging.From(ctx).Debug("call has no transcript", "call_id", callID)
		return nil, nil
	}

	var utterances []model.Utterance
	for _, section := range resp.CallTranscripts[0].Transcript {
		for _, sentence := range section.Sentences {
			if sentence.Text == "" {
				continue
			}
			utterances = append(utterances, model.Utterance{
				Topic:     section.Topic,
				SpeakerID: section.SpeakerID,
				Text:      sentence.Text,
			})
		}
	}

	return utterances, nil
}
