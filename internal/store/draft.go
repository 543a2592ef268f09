package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// draftRepo implements DraftRepo with the SQL builder.
type draftRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *draftRepo) Save(ctx context.Context, data json.RawMessage) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	query, args := builder().Insert(tableDrafts).
		Columns("sequence", "timestamp", "data").
		Values(seqNum, time.Now().UTC(), jsonText(data)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (r *draftRepo) Latest(ctx context.Context) (*Draft, error) {
	query, args := builder().Select("id", "sequence", "timestamp", "data").
		From(entsql.Table(tableDrafts)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Query()

	var (
		d    Draft
		data []byte
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&d.ID, &d.Sequence, &d.Timestamp, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest draft: %w", err)
	}
	d.Data = data
	return &d, nil
}

func (r *draftRepo) Prune(ctx context.Context, keep int) error {
	// Find the sequence of the Nth most recent draft.
	query, args := builder().Select("sequence").
		From(entsql.Table(tableDrafts)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Offset(keep).
		Query()
	var threshold int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // fewer than keep drafts exist
	}
	if err != nil {
		return fmt.Errorf("query drafts for prune: %w", err)
	}

	query, args = builder().Delete(tableDrafts).
		Where(entsql.LTE("sequence", threshold)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune drafts: %w", err)
	}
	return nil
}

func (r *draftRepo) Clear(ctx context.Context) error {
	query, args := builder().Delete(tableDrafts).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear drafts: %w", err)
	}
	return nil
}
