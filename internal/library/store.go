package library

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mesh-intelligence/scriptbox/pkg/types"
)

// ClearPrompt is the question put to the Confirmer before ClearAll.
const ClearPrompt = "Clear all saved items?"

// Confirmer asks the user to approve a destructive operation.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// denyAll is the default Confirmer; nothing destructive happens unless a
// caller wires a real prompt.
var denyAll = ConfirmFunc(func(string) bool { return false })

// Store is the library over a Storage backend.
type Store struct {
	mu      sync.Mutex
	storage types.Storage
	bus     *Bus
	confirm Confirmer
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithBus sets the bus that receives library-updated events.
func WithBus(b *Bus) Option {
	return func(s *Store) { s.bus = b }
}

// WithConfirmer sets the Confirmer consulted by ClearAll.
func WithConfirmer(c Confirmer) Option {
	return func(s *Store) { s.confirm = c }
}

// WithClock overrides time.Now for timestamp generation.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New returns a Store over storage.
func New(storage types.Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		bus:     NewBus(),
		confirm: denyAll,
		now:     time.Now,
		logger:  slog.Default().With("component", "library"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bus returns the bus the Store publishes to.
func (s *Store) Bus() *Bus {
	return s.bus
}
