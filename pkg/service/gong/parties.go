package gong

import (
	"context"
	"encoding/json"

	"github.com/callcoach/callcoach/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

const extensivePath = "/v2/calls/extensive"

type extensiveRequest struct {
	Filter          callFilter      `json:"filter"`
	ContentSelector contentSelector `json:"contentSelector"`
}

type contentSelector struct {
	ExposedFields exposedFields `json:"exposedFields"`
}

type exposedFields struct {
	Parties bool `json:"parties"`
}

type extensiveResponse struct {
	Calls []struct {
		Parties []struct {
			SpeakerID string `json:"speakerId"`
			Name      string `json:"name"`
		} `json:"parties"`
	} `json:"calls"`
}

// GetParties fetches the participants of a call and maps speaker IDs to
// display names. A party missing either field contributes no entry
// rather than failing the resolution. Callers treat any returned error
// as degradable: missing names never block the analysis itself.
func (c *Client) GetParties(ctx context.Context, callID model.CallID) (model.PartyMap, error) {
	body, err := c.post(ctx, extensivePath, extensiveRequest{
		Filter:          callFilter{CallIDs: []model.CallID{callID}},
		ContentSelector: contentSelector{ExposedFields: exposedFields{Parties: true}},
	})
	if err != nil {
		return nil, err
	}

	var resp extensiveResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, goerr.Wrap(model.ErrParse, "malformed call info response",
			goerr.V("call_id", callID),
			goerr.V("cause", err.Error()))
	}

	parties := model.PartyMap{}
	if len(resp.Calls) == 0 {
		return parties, nil
	}

	for _, p := range resp.Calls[0].Parties {
		if p.SpeakerID == "" || p.Name == "" {
			continue
		}
		parties[p.SpeakerID] = p.Name
	}

	return parties, nil
}
