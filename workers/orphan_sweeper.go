// workers/orphan_sweeper.go
package workers

import (
	"context"
	"fmt"
	"time"

	"deck-tracker/docstore"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// SweepResult counts what a sweep removed.
type SweepResult struct {
	Decks   int
	Matches int
}

// OrphanSweeper periodically deletes decks whose profile is gone and matches
// whose deck is gone. Cascading deletes are not atomic, and some backends
// keep subcollections alive after their parent document is deleted.
type OrphanSweeper struct {
	store     docstore.Store
	interval  time.Duration
	scheduler gocron.Scheduler
}

func NewOrphanSweeper(store docstore.Store, interval time.Duration) *OrphanSweeper {
	return &OrphanSweeper{store: store, interval: interval}
}

// Start schedules Sweep every interval. Runs never overlap.
func (w *OrphanSweeper) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() {
			res, err := w.Sweep(ctx)
			if err != nil {
				zap.S().Errorf("[SWEEPER] ❌ sweep failed: %v", err)
				return
			}
			if res.Decks > 0 || res.Matches > 0 {
				zap.S().Infof("[SWEEPER] 🧹 removed %d orphan deck(s) and %d orphan match(es)", res.Decks, res.Matches)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName("orphan-sweeper"),
	)
	if err != nil {
		_ = sched.Shutdown()
		return fmt.Errorf("failed to schedule orphan sweeper: %w", err)
	}

	w.scheduler = sched
	sched.Start()
	zap.S().Infof("[SWEEPER] 🔁 orphan sweeper running every %s", w.interval)
	return nil
}

// Stop waits for a running sweep and stops the schedule.
func (w *OrphanSweeper) Stop() error {
	if w.scheduler == nil {
		return nil
	}
	err := w.scheduler.Shutdown()
	w.scheduler = nil
	zap.S().Info("[SWEEPER] ⏹️ orphan sweeper stopped")
	return err
}

// Sweep runs one pass. Children are listed before their parents, so a record
// created during the pass is never mistaken for an orphan.
func (w *OrphanSweeper) Sweep(ctx context.Context) (SweepResult, error) {
	var res SweepResult

	matches, err := w.store.CollectionGroup(ctx, "matches")
	if err != nil {
		return res, err
	}
	decks, err := w.store.CollectionGroup(ctx, "decks")
	if err != nil {
		return res, err
	}
	profiles, err := w.store.List(ctx, "profiles")
	if err != nil {
		return res, err
	}

	liveProfiles := make(map[string]bool, len(profiles))
	for _, p := range profiles {
		liveProfiles[p.ID] = true
	}

	liveDecks := make(map[string]bool, len(decks))
	for _, d := range decks {
		profileID, ok := docstore.ParentDocID(d.Collection, "profiles")
		if ok && liveProfiles[profileID] {
			liveDecks[profileID+"/"+d.ID] = true
			continue
		}
		if err := w.store.Delete(ctx, d.Collection, d.ID); err != nil {
			return res, fmt.Errorf("delete orphan deck %s: %w", d.ID, err)
		}
		res.Decks++
	}

	for _, m := range matches {
		profileID, okP := docstore.ParentDocID(m.Collection, "profiles")
		deckID, okD := docstore.ParentDocID(m.Collection, "decks")
		if okP && okD && liveDecks[profileID+"/"+deckID] {
			continue
		}
		if err := w.store.Delete(ctx, m.Collection, m.ID); err != nil {
			return res, fmt.Errorf("delete orphan match %s: %w", m.ID, err)
		}
		res.Matches++
	}
	return res, nil
}
