package questionnaire

import (
	"context"
	"sync"

	"github.com/abhisek/moodcheck/internal/store"
	"github.com/abhisek/moodcheck/internal/wizard"
)

// draftWriter serializes draft writes for one questionnaire run. Once the
// run is submitted it clears the repo and drops any save still in flight,
// so a late save cannot resurrect a finished run.
type draftWriter struct {
	repo store.DraftRepo

	mu     sync.Mutex
	closed bool
}

func newDraftWriter(repo store.DraftRepo) *draftWriter {
	if repo == nil {
		return nil
	}
	return &draftWriter{repo: repo}
}

func (w *draftWriter) save(ctx context.Context, st wizard.State) error {
	data, err := wizard.Marshal(st)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	if err := w.repo.Save(ctx, data); err != nil {
		return err
	}
	return w.repo.Prune(ctx, keepDrafts)
}

func (w *draftWriter) clear(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return w.repo.Clear(ctx)
}
