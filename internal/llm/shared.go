package llm

import (
	"encoding/json"
	"net/http"
)

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names pass through so callers can use raw model IDs.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}

// statusError maps an HTTP status from a provider SDK to one of the typed
// errors. Every failure is at least ErrProviderUnavailable so the retry
// decorator treats it as transient.
func statusError(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// checkContent validates provider output against the request schema, when
// there is one, and flags truncated structured output.
func checkContent(req Request, content json.RawMessage, stop string) error {
	if req.Schema == nil {
		return nil
	}
	if stop == StopMaxTokens {
		if err := validateResponse(req.Schema, content); err != nil {
			return &ErrMaxTokensExceeded{Content: content}
		}
	}
	return validateResponse(req.Schema, content)
}
