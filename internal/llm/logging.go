package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/moodcheck/internal/store"
)

// EventSink receives one record per LLM request. store.EventRepo
// satisfies it.
type EventSink interface {
	AppendLLMRequest(ctx context.Context, data store.LLMCall) error
}

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner    Provider
	provider string
	sink     EventSink
}

// WithLogging wraps a Provider with event logging. name is the provider
// name recorded alongside the model.
func WithLogging(p Provider, name string, sink EventSink) Provider {
	return &LoggingProvider{inner: p, provider: name, sink: sink}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMCall{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// Log the event but don't fail the request if logging fails. A
	// cancelled request still gets recorded.
	if logErr := l.sink.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request event: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	b.WriteString("[user]\n")
	b.WriteString(req.Prompt)
	b.WriteString("\n\n")

	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.Write(def)
			b.WriteString("\n")
		}
	}

	return b.String()
}
