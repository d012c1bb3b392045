package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/callcoach/callcoach/pkg/model"
	"github.com/callcoach/callcoach/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// ExtractResult turns raw model output into a validated AnalysisResult.
// The output is untrusted free text that nominally contains JSON but
// may be wrapped in prose or code fences: strip fences, cut the
// first-"{" to last-"}" substring, parse, then validate every field in
// declaration order. The first violation fails the extraction; no field
// is ever defaulted.
func ExtractResult(ctx context.Context, raw string) (*model.AnalysisResult, error) {
	cleaned := stripFences(raw)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end < start {
		logging.From(ctx).Error("model output contains no JSON object", "raw", snippet(raw))
		return nil, goerr.Wrap(model.ErrNoJSONFound, "cannot extract analysis result",
			goerr.V("raw", snippet(raw)))
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &fields); err != nil {
		logging.From(ctx).Error("model output is not parseable JSON", "raw", snippet(raw), "error", err)
		return nil, goerr.Wrap(model.ErrInvalidJSON, "cannot parse analysis result",
			goerr.V("raw", snippet(raw)),
			goerr.V("cause", err.Error()))
	}

	didWell, err := stringList(fields, "didWell")
	if err != nil {
		return nil, err
	}
	improvements, err := stringList(fields, "improvements")
	if err != nil {
		return nil, err
	}
	finalScore, err := number(fields, "finalScore")
	if err != nil {
		return nil, err
	}
	coachingTips, err := stringList(fields, "coachingTips")
	if err != nil {
		return nil, err
	}

	// The documented score range is [1,10] but the contract passes the
	// value through as received. Out-of-range scores are flagged, not
	// rejected.
	if finalScore < 1 || finalScore > 10 {
		logging.From(ctx).Warn("final score is outside the documented range", "final_score", finalScore)
	}

	return &model.AnalysisResult{
		DidWell:      didWell,
		Improvements: improvements,
		FinalScore:   finalScore,
		CoachingTips: coachingTips,
	}, nil
}

// stripFences removes markdown code fence markers the model may wrap
// its JSON in.
func stripFences(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	return strings.ReplaceAll(cleaned, "```", "")
}

func stringList(fields map[string]any, field string) ([]string, error) {
	v, ok := fields[field]
	if !ok {
		return nil, goerr.Wrap(model.ErrSchemaValidation, fmt.Sprintf("missing required field %q", field),
			goerr.V("field", field))
	}

	items, ok := v.([]any)
	if !ok {
		return nil, goerr.Wrap(model.ErrSchemaValidation, fmt.Sprintf("field %q must be a list of strings", field),
			goerr.V("field", field))
	}

	list := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, goerr.Wrap(model.ErrSchemaValidation, fmt.Sprintf("field %q must contain only strings", field),
				goerr.V("field", field))
		}
		list = append(list, s)
	}

	return list, nil
}

func number(fields map[string]any, field string) (float64, error) {
	v, ok := fields[field]
	if !ok {
		return 0, goerr.Wrap(model.ErrSchemaValidation, fmt.Sprintf("missing required field %q", field),
			goerr.V("field", field))
	}

	n, ok := v.(float64)
	if !ok {
		return 0, goerr.Wrap(model.ErrSchemaValidation, fmt.Sprintf("field %q must be numeric", field),
			goerr.V("field", field))
	}

	return n, nil
}

// snippet truncates raw model output for logging and error values.
func snippet(raw string) string {
	const limit = 200
	if len(raw) <= limit {
		return raw
	}
	return raw[:limit] + "..."
}
