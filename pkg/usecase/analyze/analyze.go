package analyze

import (
	"context"
	"strings"
	"sync"

	"github.com/callcoach/callcoach/pkg/adapter"
	"github.com/callcoach/callcoach/pkg/model"
	"github.com/callcoach/callcoach/pkg/service/gong"
	"github.com/callcoach/callcoach/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"
)

// Decoding configuration for the coaching evaluation. Both values are
// fixed; only the model identifier is configuration.
const (
	temperature     = float32(0.7)
	maxOutputTokens = int32(3000)
)

// ReferenceMaterial holds the two grading references embedded into the
// analysis prompt. Both are opaque free text.
type ReferenceMaterial struct {
	IdealPitch    string
	CoachingGuide string
}

// UseCase runs the coaching analysis pipeline for one call at a time
type UseCase struct {
	gong   gong.Gong
	gemini adapter.Gemini
}

// New creates a new analyze UseCase instance. The gong client may be
// nil when only local transcripts are analyzed.
func New(gongClient gong.Gong, gemini adapter.Gemini) *UseCase {
	return &UseCase{
		gong:   gongClient,
		gemini: gemini,
	}
}

// AnalyzeCall fetches and assembles the transcript of a remote call,
// then evaluates it against the reference material.
func (u *UseCase) AnalyzeCall(ctx context.Context, callID model.CallID, ref ReferenceMaterial) (*model.AnalysisResult, error) {
	transcript, err := u.FetchTranscript(ctx, callID)
	if err != nil {
		return nil, err
	}

	if len(transcript) == 0 {
		logging.From(ctx).Warn("call transcript is empty, analysis runs on an empty subject", "call_id", callID)
	}

	return u.AnalyzeTranscript(ctx, transcript.String(), ref)
}

// AnalyzeTranscript evaluates an already-assembled transcript text.
// This is the shared tail of the pipeline for remote calls and local
// transcript files.
func (u *UseCase) AnalyzeTranscript(ctx context.Context, transcript string, ref ReferenceMaterial) (*model.AnalysisResult, error) {
	prompt, err := BuildPrompt(transcript, ref.IdealPitch, ref.CoachingGuide)
	if err != nil {
		return nil, err
	}

	raw, err := u.invoke(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return ExtractResult(ctx, raw)
}

// FetchTranscript retrieves utterances and participants concurrently
// and joins them into a speaker-labeled transcript. Party resolution is
// ancillary: if it fails, speaker names degrade to synthesized IDs and
// the analysis proceeds.
func (u *UseCase) FetchTranscript(ctx context.Context, callID model.CallID) (model.Transcript, error) {
	if u.gong == nil {
		return nil, goerr.New("call recording service client is not configured")
	}

	var (
		utterances []model.Utterance
		parties    model.PartyMap
		fetchErr   error
	)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		utterances, fetchErr = u.gong.GetTranscript(ctx, callID)
	}()

	go func() {
		defer wg.Done()
		resolved, err := u.gong.GetParties(ctx, callID)
		if err != nil {
			logging.From(ctx).Warn("failed to resolve call parties, falling back to speaker IDs",
				"call_id", callID, "error", err)
			resolved = model.PartyMap{}
		}
		parties = resolved
	}()

	wg.Wait()

	if fetchErr != nil {
		return nil, goerr.Wrap(fetchErr, "failed to fetch call transcript", goerr.V("call_id", callID))
	}

	return Assemble(utterances, parties), nil
}

// invoke sends the prompt to the model and returns the raw response
// text. One outbound call, no retry, no streaming.
func (u *UseCase) invoke(ctx context.Context, prompt string) (string, error) {
	temp := temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: maxOutputTokens,
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := u.gemini.GenerateContent(ctx, contents, config)
	if err != nil {
		return "", goerr.Wrap(model.ErrModelInvocation, "generate content request failed",
			goerr.V("cause", err.Error()))
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", goerr.Wrap(model.ErrModelInvocation, "invalid response structure from model")
	}

	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			parts = append(parts, part.Text)
		}
	}

	return strings.Join(parts, ""), nil
}
