package model

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrRemoteService indicates a non-2xx response from the call
	// recording service. Status and body are attached as goerr values.
	ErrRemoteService = goerr.New("call recording service returned an error")

	// ErrParse indicates a malformed JSON body from the call recording
	// service on an otherwise successful response.
	ErrParse = goerr.New("failed to parse call recording service response")

	// ErrModelInvocation indicates the generative model call itself failed.
	ErrModelInvocation = goerr.New("model invocation failed")

	// ErrPromptTooLarge indicates the combined reference material and
	// transcript exceed the prompt size budget. The prompt is never
	// truncated silently.
	ErrPromptTooLarge = goerr.New("analysis prompt exceeds the maximum input size")

	// ErrNoJSONFound indicates the model output contains no JSON object.
	ErrNoJSONFound = goerr.New("no JSON object found in model output")

	// ErrInvalidJSON indicates the extracted JSON substring does not parse.
	ErrInvalidJSON = goerr.New("model output is not valid JSON")

	// ErrSchemaValidation indicates the parsed JSON is missing a required
	// field or a field has the wrong type. The offending field is attached
	// as a goerr value.
	ErrSchemaValidation = goerr.New("model output does not match the analysis schema")
)
