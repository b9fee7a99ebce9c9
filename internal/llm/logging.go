package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/abhisek/vitalcheck/internal/store"
)

// EventSink stores LLM request events. store.EventRepo satisfies it.
type EventSink interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// LoggingProvider logs every call and, when a sink is set, records it as
// an event with the full request and response bodies.
type LoggingProvider struct {
	inner    Provider
	provider string
	sink     EventSink
	logger   *log.Logger
}

// WithLogging wraps p. sink may be nil.
func WithLogging(p Provider, providerName string, sink EventSink, logger *log.Logger) Provider {
	return &LoggingProvider{inner: p, provider: providerName, sink: sink, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	elapsed := time.Since(start)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   elapsed.Milliseconds(),
		Success:     err == nil,
		RequestBody: describeRequest(req),
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.ResponseBody = string(resp.Content)
	}

	if err != nil {
		data.ErrorMessage = err.Error()
		l.logger.Warn("llm request failed", "provider", l.provider, "model", data.Model,
			"purpose", data.Purpose, "latency", elapsed, "err", err)
	} else {
		l.logger.Debug("llm request", "provider", l.provider, "model", data.Model,
			"purpose", data.Purpose, "latency", elapsed,
			"input_tokens", data.InputTokens, "output_tokens", data.OutputTokens)
	}

	if l.sink != nil {
		if serr := l.sink.AppendLLMRequest(ctx, data); serr != nil {
			l.logger.Warn("recording llm request event", "err", serr)
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

func describeRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
