package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var llmEventColumns = []string{
	"id", "sequence", "timestamp", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body", "response_body",
}

// eventRepo implements EventRepo backed by the SQL builder and the global
// sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMCall) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	query, args := builder().Insert(tableLLMRequests).
		Columns("sequence", "timestamp", "provider", "model", "purpose",
			"input_tokens", "output_tokens", "latency_ms", "success",
			"error_message", "request_body", "response_body").
		Values(seqNum, time.Now().UTC(), data.Provider, data.Model, data.Purpose,
			data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success,
			data.ErrorMessage, data.RequestBody, data.ResponseBody).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMCallRecord, error) {
	sel := builder().Select(llmEventColumns...).
		From(entsql.Table(tableLLMRequests)).
		OrderBy(entsql.Desc("sequence"))
	preds := opts.timeRange()
	if opts.Purpose != "" {
		preds = append(preds, entsql.EQ("purpose", opts.Purpose))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMCallRecord
	for rows.Next() {
		rec, err := scanLLMEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMCallRecord, error) {
	query, args := builder().Select(llmEventColumns...).
		From(entsql.Table(tableLLMRequests)).
		Where(entsql.EQ("id", id)).
		Query()
	rec, err := scanLLMEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get LLM event: %w", err)
	}
	return rec, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	return r.usage(ctx, "purpose", func(u *LLMUsage) *string { return &u.Purpose })
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsage, error) {
	return r.usage(ctx, "model", func(u *LLMUsage) *string { return &u.Model })
}

// usage aggregates token and latency totals grouped by column.
func (r *eventRepo) usage(ctx context.Context, column string, key func(*LLMUsage) *string) ([]LLMUsage, error) {
	query, args := builder().Select(
		column,
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
		entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
		entsql.As(entsql.Avg("latency_ms"), "avg_latency"),
	).
		From(entsql.Table(tableLLMRequests)).
		GroupBy(column).
		OrderBy(entsql.Desc("calls"), column).
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage by %s: %w", column, err)
	}
	defer rows.Close()

	var out []LLMUsage
	for rows.Next() {
		var (
			u       LLMUsage
			latency float64
		)
		if err := rows.Scan(key(&u), &u.Calls, &u.InputTokens, &u.OutputTokens, &latency); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		u.AvgLatencyMs = int64(latency)
		out = append(out, u)
	}
	return out, rows.Err()
}

func scanLLMEvent(s rowScanner) (*LLMCallRecord, error) {
	var rec LLMCallRecord
	err := s.Scan(&rec.ID, &rec.Sequence, &rec.Timestamp, &rec.Provider, &rec.Model,
		&rec.Purpose, &rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs, &rec.Success,
		&rec.ErrorMessage, &rec.RequestBody, &rec.ResponseBody)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
