package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var assessmentColumns = []string{
	"id", "sequence", "assessment_id", "timestamp", "label", "code",
	"classifier", "features", "answers", "warnings",
}

// assessmentRepo implements AssessmentRepo with the SQL builder.
type assessmentRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *assessmentRepo) Save(ctx context.Context, a *Assessment) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now()
	}
	a.Timestamp = a.Timestamp.UTC()

	query, args := builder().Insert(tableAssessments).
		Columns("sequence", "assessment_id", "timestamp", "label", "code",
			"classifier", "features", "answers", "warnings").
		Values(seqNum, a.AssessmentID, a.Timestamp, a.Label, a.Code,
			a.Classifier, jsonText(a.Features), jsonText(a.Answers), jsonText(a.Warnings)).
		Returning("id").
		Query()
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&a.ID); err != nil {
		return fmt.Errorf("save assessment: %w", err)
	}
	a.Sequence = seqNum
	return nil
}

func (r *assessmentRepo) Get(ctx context.Context, assessmentID string) (*Assessment, error) {
	query, args := builder().Select(assessmentColumns...).
		From(entsql.Table(tableAssessments)).
		Where(entsql.EQ("assessment_id", assessmentID)).
		Limit(1).
		Query()
	a, err := scanAssessment(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get assessment: %w", err)
	}
	return a, nil
}

func (r *assessmentRepo) List(ctx context.Context, opts QueryOpts) ([]Assessment, error) {
	sel := builder().Select(assessmentColumns...).
		From(entsql.Table(tableAssessments)).
		OrderBy(entsql.Desc("sequence"))
	preds := opts.timeRange()
	if opts.Label != "" {
		preds = append(preds, entsql.EQ("label", opts.Label))
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
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var out []Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *assessmentRepo) CountByLabel(ctx context.Context) ([]LabelCount, error) {
	query, args := builder().Select("label", entsql.As(entsql.Count("*"), "n")).
		From(entsql.Table(tableAssessments)).
		GroupBy("label").
		OrderBy(entsql.Desc("n"), "label").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count assessments: %w", err)
	}
	defer rows.Close()

	var out []LabelCount
	for rows.Next() {
		var lc LabelCount
		if err := rows.Scan(&lc.Label, &lc.Count); err != nil {
			return nil, fmt.Errorf("scan label count: %w", err)
		}
		out = append(out, lc)
	}
	return out, rows.Err()
}

func (r *assessmentRepo) DeleteAll(ctx context.Context) (int, error) {
	query, args := builder().Delete(tableAssessments).Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete assessments: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(s rowScanner) (*Assessment, error) {
	var (
		a                           Assessment
		features, answers, warnings []byte
	)
	err := s.Scan(&a.ID, &a.Sequence, &a.AssessmentID, &a.Timestamp, &a.Label,
		&a.Code, &a.Classifier, &features, &answers, &warnings)
	if err != nil {
		return nil, err
	}
	a.Features = features
	a.Answers = answers
	a.Warnings = warnings
	return &a, nil
}

// timeRange returns the timestamp predicates selected by opts. Timestamps
// are stored as UTC text, so bounds are converted before comparing.
func (o QueryOpts) timeRange() []*entsql.Predicate {
	var preds []*entsql.Predicate
	if !o.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", o.From.UTC()))
	}
	if !o.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", o.To.UTC()))
	}
	return preds
}

// jsonText stores raw JSON as text, mapping empty to JSON null.
func jsonText(raw []byte) string {
	if len(raw) == 0 {
		return "null"
	}
	return string(raw)
}
