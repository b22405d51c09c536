package reference

import (
	"context"
	"log/slog"
	"sync"

	"github.com/CodePeacock/pdf-parser/internal/fetch"
)

// State is the sync state of one reference list.
type State int

const (
	Idle State = iota
	Fetching
	Cached
	StaleFallback
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Fetching:
		return "fetching"
	case Cached:
		return "cached"
	case StaleFallback:
		return "stale_fallback"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Source says where a list comes from and where it is cached.
type Source struct {
	Kind      Kind
	URL       string
	CachePath string
}

// Result is the outcome of one sync.
type Result struct {
	Kind  Kind
	State State
	// List is nil when State is Failed.
	List *List
	// FromCache is true when the fetched content matched the cache file and
	// nothing was written.
	FromCache bool
	// Written is true when the cache file was replaced.
	Written bool
	// Err is the fetch or cache error behind a fallback or failure.
	Err error
}

// Fetcher retrieves a URL body. Non-2xx responses are errors.
type Fetcher interface {
	Get(ctx context.Context, url string) (*fetch.Result, error)
}

// HTTPFetcher is a Fetcher backed by fetch.Get.
type HTTPFetcher struct {
	Options *fetch.Options
}

// Get implements Fetcher.
func (f HTTPFetcher) Get(ctx context.Context, url string) (*fetch.Result, error) {
	return fetch.Get(ctx, url, f.Options)
}

// Syncer fetches reference lists and maintains their cache files.
type Syncer struct {
	fetcher Fetcher
	logger  *slog.Logger

	mu     sync.Mutex
	states map[Kind]State
}

// NewSyncer creates a Syncer. A nil fetcher uses fetch.Get with default
// options.
func NewSyncer(fetcher Fetcher, logger *slog.Logger) *Syncer {
	if fetcher == nil {
		fetcher = HTTPFetcher{Options: fetch.DefaultOptions()}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{fetcher: fetcher, logger: logger, states: make(map[Kind]State)}
}

// State returns the last reported state for kind.
func (s *Syncer) State(kind Kind) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[kind]
}

func (s *Syncer) setState(kind Kind, state State) {
	s.mu.Lock()
	s.states[kind] = state
	s.mu.Unlock()
}

// Sync fetches src once. On success the deduplicated list is compared with
// the cache file and written only if it changed. On a transport error, a
// non-2xx response or an undecodable body the cache file is used instead.
// Without a usable cache the result is Failed with a nil list.
func (s *Syncer) Sync(ctx context.Context, src Source) *Result {
	s.setState(src.Kind, Fetching)
	logger := s.logger.With("list", src.Kind.String(), "url", src.URL)

	res, err := s.fetcher.Get(ctx, src.URL)
	if err == nil {
		var list *List
		list, err = ParseList(src.Kind, res.Body)
		if err == nil {
			result := s.store(src, list)
			s.setState(src.Kind, result.State)
			logger.Debug("reference list synced",
				"entries", list.Len(),
				"skipped", list.Skipped,
				"from_cache", result.FromCache,
				"written", result.Written)
			return result
		}
	}

	logger.Warn("reference fetch failed, trying cache", "cache", src.CachePath, "error", err)
	result := s.fallback(src, err)
	s.setState(src.Kind, result.State)
	return result
}

func (s *Syncer) store(src Source, list *List) *Result {
	result := &Result{Kind: src.Kind, State: Cached, List: list}

	data, err := Encode(list.Raw)
	if err != nil {
		result.Err = err
		return result
	}

	unlock := lockPath(src.CachePath)
	defer unlock()

	cached, exists, err := readCache(src.CachePath)
	if err != nil {
		// the fetched list is still good; the cache is rewritten below
		s.logger.Warn("unreadable reference cache", "cache", src.CachePath, "error", err)
	}
	if sameContent(cached, exists, data) {
		result.FromCache = true
		return result
	}

	if err := writeCache(src.CachePath, data); err != nil {
		s.logger.Warn("failed to write reference cache", "cache", src.CachePath, "error", err)
		result.Err = err
		return result
	}
	result.Written = true
	return result
}

func (s *Syncer) fallback(src Source, cause error) *Result {
	unlock := lockPath(src.CachePath)
	defer unlock()

	cached, exists, err := readCache(src.CachePath)
	if err != nil {
		return &Result{Kind: src.Kind, State: Failed, Err: err}
	}
	if !exists {
		return &Result{Kind: src.Kind, State: Failed, Err: cause}
	}

	list, err := ParseList(src.Kind, cached)
	if err != nil {
		return &Result{Kind: src.Kind, State: Failed, Err: &CacheError{Path: src.CachePath, Message: "corrupt cache", Cause: err}}
	}
	return &Result{Kind: src.Kind, State: StaleFallback, List: list, FromCache: true, Err: cause}
}
