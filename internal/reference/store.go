package reference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Report holds the results of one Store refresh.
type Report struct {
	Skills       *Result
	Designations *Result
}

// Store holds the latest skill and designation lists for the process.
// Readers get the last good lists while a refresh is running.
type Store struct {
	syncer       *Syncer
	skills       Source
	designations Source
	policy       RetryPolicy
	logger       *slog.Logger

	group singleflight.Group

	mu    sync.RWMutex
	lists map[Kind]*List
	last  Report
}

// NewStore creates a Store for the two sources.
func NewStore(syncer *Syncer, skills, designations Source, policy RetryPolicy, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if syncer == nil {
		syncer = NewSyncer(nil, logger)
	}
	return &Store{
		syncer:       syncer,
		skills:       skills,
		designations: designations,
		policy:       policy,
		logger:       logger,
		lists:        make(map[Kind]*List),
	}
}

// Skills returns the current skill list. It is never nil.
func (s *Store) Skills() *List {
	return s.get(Skills)
}

// Designations returns the current designation list. It is never nil.
func (s *Store) Designations() *List {
	return s.get(Designations)
}

// LastReport returns the results of the most recent refresh.
func (s *Store) LastReport() Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

func (s *Store) get(kind Kind) *List {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l := s.lists[kind]; l != nil {
		return l
	}
	return Empty(kind)
}

func (s *Store) set(kind Kind, l *List) {
	s.mu.Lock()
	s.lists[kind] = l
	s.mu.Unlock()
}

// Refresh syncs both lists concurrently. Skills are fetched once;
// designations are polled under the retry policy. Lists that could not be
// obtained keep their previous value. Concurrent callers share one refresh.
func (s *Store) Refresh(ctx context.Context) (Report, error) {
	ch := s.group.DoChan("refresh", func() (any, error) {
		return s.refresh(ctx)
	})

	select {
	case res := <-ch:
		report, _ := res.Val.(Report)
		return report, res.Err
	case <-ctx.Done():
		return Report{}, ctx.Err()
	}
}

func (s *Store) refresh(ctx context.Context) (Report, error) {
	var (
		report          Report
		skillsErr       error
		designationsErr error
	)

	var g errgroup.Group

	g.Go(func() error {
		res := s.syncer.Sync(ctx, s.skills)
		report.Skills = res
		if res.List == nil {
			skillsErr = fmt.Errorf("skills: %s: %w", res.State, res.Err)
			return nil
		}
		s.set(Skills, res.List)
		return nil
	})

	g.Go(func() error {
		res, err := s.syncer.SyncUntilAvailable(ctx, s.designations, s.policy)
		report.Designations = res
		if err != nil {
			designationsErr = err
			return nil
		}
		s.set(Designations, res.List)
		return nil
	})

	_ = g.Wait()

	s.mu.Lock()
	s.last = report
	s.mu.Unlock()

	err := errors.Join(skillsErr, designationsErr)
	if err != nil {
		s.logger.Warn("reference refresh incomplete", "error", err)
	}
	return report, err
}
