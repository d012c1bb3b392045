package gong_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/callcoach/callcoach/pkg/model"
	"github.com/callcoach/callcoach/pkg/service/gong"
	"github.com/m-mizutani/gt"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *gong.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := gong.New(srv.URL, "test-access", "test-secret",
		gong.WithClock(func() time.Time { return time.UnixMilli(1700000000000) }))
	gt.NoError(t, err)

	return client
}

const transcriptFixture = `{
	"callTranscripts": [
		{
			"transcript": [
				{
					"topic": "Intro",
					"speakerId": "s1",
					"sentences": [
						{"text": "Hello"},
						{"text": ""},
						{"text": "Thanks for joining"}
					]
				},
				{
					"topic": "Pricing",
					"speakerId": "s2",
					"sentences": [{"text": "How much does it cost?"}]
				}
			]
		}
	]
}`

func TestGetTranscript(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.Method, http.MethodPost)
		gt.Equal(t, r.URL.Path, "/v2/calls/transcript")
		gt.Equal(t, r.Header.Get("X-Timestamp"), "1700000000000")
		gt.Equal(t, r.Header.Get("X-Request-Id"), "1700000000000")
		gt.True(t, r.Header.Get("X-Signature") != "")

		user, pass, ok := r.BasicAuth()
		gt.True(t, ok)
		gt.Equal(t, user, "test-access")
		gt.Equal(t, pass, "test-secret")

		var req struct {
			Filter struct {
				CallIDs []string `json:"callIds"`
			} `json:"filter"`
		}
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gt.Equal(t, req.Filter.CallIDs, []string{"call-1"})

		w.Write([]byte(transcriptFixture))
	})

	utterances, err := client.GetTranscript(context.Background(), "call-1")
	gt.NoError(t, err)

	gt.Equal(t, utterances, []model.Utterance{
		{Topic: "Intro", SpeakerID: "s1", Text: "Hello"},
		{Topic: "Intro", SpeakerID: "s1", Text: "Thanks for joining"},
		{Topic: "Pricing", SpeakerID: "s2", Text: "How much does it cost?"},
	})
}

func TestGetTranscriptSignatureStable(t *testing.T) {
	var signatures []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		signatures = append(signatures, r.Header.Get("X-Signature"))
		w.Write([]byte(transcriptFixture))
	})

	ctx := context.Background()
	_, err := client.GetTranscript(ctx, "call-1")
	gt.NoError(t, err)
	_, err = client.GetTranscript(ctx, "call-1")
	gt.NoError(t, err)

	// Fixed clock means fixed timestamp and request ID, so the
	// signature must be reproducible byte for byte.
	gt.A(t, signatures).Length(2)
	gt.Equal(t, signatures[0], signatures[1])
}

func TestGetTranscriptEmpty(t *testing.T) {
	testCases := map[string]string{
		"empty list":     `{"callTranscripts": []}`,
		"missing field":  `{}`,
		"null container": `{"callTranscripts": null}`,
	}

	for name, body := range testCases {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})

			utterances, err := client.GetTranscript(context.Background(), "call-1")
			gt.NoError(t, err)
			gt.A(t, utterances).Length(0)
		})
	}
}

func TestGetTranscriptServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal failure", http.StatusInternalServerError)
	})

	_, err := client.GetTranscript(context.Background(), "call-1")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrRemoteService))
}

func TestGetTranscriptMalformedJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not json"))
	})

	_, err := client.GetTranscript(context.Background(), "call-1")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrParse))
}

func TestGetParties(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.URL.Path, "/v2/calls/extensive")

		var req struct {
			Filter struct {
				CallIDs []string `json:"callIds"`
			} `json:"filter"`
			ContentSelector struct {
				ExposedFields struct {
					Parties bool `json:"parties"`
				} `json:"exposedFields"`
			} `json:"contentSelector"`
		}
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gt.Equal(t, req.Filter.CallIDs, []string{"call-1"})
		gt.True(t, req.ContentSelector.ExposedFields.Parties)

		w.Write([]byte(`{
			"calls": [
				{
					"parties": [
						{"speakerId": "s1", "name": "Alice Example"},
						{"speakerId": "s2", "name": "Bob Customer"},
						{"speakerId": "s3"},
						{"name": "No Speaker ID"}
					]
				}
			]
		}`))
	})

	parties, err := client.GetParties(context.Background(), "call-1")
	gt.NoError(t, err)

	gt.Equal(t, parties, model.PartyMap{
		"s1": "Alice Example",
		"s2": "Bob Customer",
	})
}

func TestGetPartiesEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"calls": []}`))
	})

	parties, err := client.GetParties(context.Background(), "call-1")
	gt.NoError(t, err)
	gt.Equal(t, parties, model.PartyMap{})
}

func TestGetPartiesServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})

	_, err := client.GetParties(context.Background(), "call-1")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrRemoteService))
}

func TestNewValidation(t *testing.T) {
	_, err := gong.New("", "ak", "sk")
	gt.Error(t, err)

	_, err = gong.New("https://api.example.com", "", "")
	gt.Error(t, err)
}
