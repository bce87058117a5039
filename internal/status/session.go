package status

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/mesh-intelligence/scriptbox/pkg/types"
)

// Snapshot is a point-in-time copy of a Session.
type Snapshot struct {
	IsPro bool
	Usage Usage
	// Known is true once a fetch has succeeded.
	Known bool
	// Err holds the last fetch failure, cleared by the next success.
	Err error
}

// Session holds the last known account status for this process and caches
// usage in storage so a later run can show it before the first fetch.
type Session struct {
	mu      sync.RWMutex
	state   Snapshot
	storage types.Storage
	logger  *slog.Logger
}

// NewSession returns a Session seeded from usage cached in storage.
// storage may be nil.
func NewSession(storage types.Storage, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default().With("component", "status")
	}
	s := &Session{
		state:   Snapshot{Usage: Usage{Limit: DefaultUsageLimit}},
		storage: storage,
		logger:  logger,
	}
	if storage != nil {
		if n, ok := s.cached(types.KeyPromptUsageCount); ok {
			s.state.Usage.Count = n
		}
		if n, ok := s.cached(types.KeyPromptUsageLimit); ok {
			s.state.Usage.Limit = n
		}
	}
	return s
}

func (s *Session) cached(key string) (int, bool) {
	raw, ok, err := s.storage.Get(key)
	if err != nil || !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		s.logger.Warn("ignoring cached usage", "key", key, "value", raw)
		return 0, false
	}
	return n, true
}

// Update records a successful fetch. Usage omitted by the service keeps the
// previous value. The usage is written through to storage.
func (s *Session) Update(a Account) error {
	s.mu.Lock()
	s.state.IsPro = a.IsPro
	if a.Usage != nil {
		s.state.Usage = *a.Usage
	}
	s.state.Known = true
	s.state.Err = nil
	usage := s.state.Usage
	s.mu.Unlock()

	if s.storage == nil {
		return nil
	}
	if err := s.storage.Set(types.KeyPromptUsageCount, strconv.Itoa(usage.Count)); err != nil {
		return err
	}
	return s.storage.Set(types.KeyPromptUsageLimit, strconv.Itoa(usage.Limit))
}

// Fail records a failed fetch. The last known status is kept.
func (s *Session) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Err = err
}

// Apply routes the result of a fetch to Update or Fail.
func (s *Session) Apply(a Account, err error) {
	if err != nil {
		s.logger.Warn("user status unavailable", "error", err)
		s.Fail(err)
		return
	}
	if err := s.Update(a); err != nil {
		s.logger.Warn("caching usage failed", "error", err)
	}
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// FetchAsync fetches in a new goroutine and hands the result to fn. The
// returned channel is closed after fn returns; callers that do not care
// about completion may drop it.
func FetchAsync(ctx context.Context, f Fetcher, fn func(Account, error)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(f.Fetch(ctx))
	}()
	return done
}
