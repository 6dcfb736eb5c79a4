// Package memory is an in-process implementation of the repository ports.
// It backs tests and the STORAGE_DRIVER=memory demo mode; nothing survives a restart.
package memory

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/SscSPs/payhub_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/payhub_backend/internal/core/ports/repositories"
)

// Store holds every table in maps guarded by one RWMutex. Ledger units and card
// default changes additionally hold a per-account mutex for their whole duration,
// so units of the same account are serialised while other accounts proceed.
type Store struct {
	mu sync.RWMutex

	users      map[string]domain.User
	usernames  map[string]string // username -> user ID
	emails     map[string]string // email -> user ID
	accounts   map[string]domain.Account
	txns       map[string][]domain.Transaction // account ID -> insertion order
	contacts   []domain.Contact                // insertion order
	cards      map[string]domain.Card
	cardOrder  []string
	qrCodes    map[string]domain.QRCode
	qrByString map[string]string // qr string -> code ID

	nextTxnID atomic.Int64

	lockMu   sync.Mutex
	accLocks map[string]*sync.Mutex

	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for server-assigned dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore returns an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		users:      make(map[string]domain.User),
		usernames:  make(map[string]string),
		emails:     make(map[string]string),
		accounts:   make(map[string]domain.Account),
		txns:       make(map[string][]domain.Transaction),
		cards:      make(map[string]domain.Card),
		qrCodes:    make(map[string]domain.QRCode),
		qrByString: make(map[string]string),
		accLocks:   make(map[string]*sync.Mutex),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// accountLock returns the mutex for an account, creating it on first use.
func (s *Store) accountLock(accountID string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	if _, exists := s.accLocks[accountID]; !exists {
		s.accLocks[accountID] = &sync.Mutex{}
	}
	return s.accLocks[accountID]
}

// NewRepositoryProvider exposes the store through every repository port.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     s,
		TransactionRepo: s,
		ContactRepo:     s,
		CardRepo:        s,
		UserRepo:        s,
		QRCodeRepo:      s,
	}
}

var (
	_ portsrepo.AccountRepositoryFacade     = (*Store)(nil)
	_ portsrepo.TransactionRepositoryFacade = (*Store)(nil)
	_ portsrepo.ContactRepositoryFacade     = (*Store)(nil)
	_ portsrepo.CardRepositoryFacade        = (*Store)(nil)
	_ portsrepo.UserRepositoryFacade        = (*Store)(nil)
	_ portsrepo.QRCodeRepositoryFacade      = (*Store)(nil)
)
