package entitlement

import (
	"context"
	"fmt"
	"sync"
	"time"

	"edcall/internal/models"

	"github.com/google/uuid"
)

// Service is the per-call entitlement state machine. It derives the
// call-time ceiling from the caller's tier and trial state, tracks elapsed
// seconds against it, and supports the two allowance-extension paths.
type Service interface {
	// Start opens a session between caller and receiver and computes the
	// caller's allowance ceiling.
	Start(ctx context.Context, callerID, receiverID uint) (Session, error)

	// Get returns a snapshot of a live session.
	Get(sessionID string) (Session, bool)

	// Advance adds one second of elapsed time and recomputes expiry. It is
	// a no-op on expired or unknown sessions, so a stale timer can never
	// corrupt state.
	Advance(sessionID string) (Session, bool)

	// RedeemMinutes debits points through the ledger and raises the ceiling
	// without resetting elapsed time.
	RedeemMinutes(ctx context.Context, sessionID string) (Session, error)

	// GrantPaidExtension resets elapsed time and grants a fresh allowance.
	// Triggered by the registry when a manual payment is approved.
	GrantPaidExtension(sessionID string) (Session, bool)

	// GrantPaidExtensionForUser applies GrantPaidExtension to the caller's
	// ongoing session, if any.
	GrantPaidExtensionForUser(callerID uint) bool

	// End tears the session down and persists its final duration.
	End(ctx context.Context, sessionID string) (Session, error)
}

type liveSession struct {
	Session
	privileged bool
	record     *models.CallSession
}

type service struct {
	users  UserStore
	store  SessionStore
	ledger Ledger

	// One mutex serializes ticks and extensions, so an expiry can never
	// race an extension applied from the same second.
	mu     sync.Mutex
	active map[string]*liveSession
}

// NewService creates a new entitlement service.
func NewService(users UserStore, store SessionStore, ledger Ledger) Service {
	if users == nil {
		panic("user store is required")
	}
	if store == nil {
		panic("session store is required")
	}
	if ledger == nil {
		panic("ledger is required")
	}

	return &service{
		users:  users,
		store:  store,
		ledger: ledger,
		active: make(map[string]*liveSession),
	}
}

func (s *service) Start(ctx context.Context, callerID, receiverID uint) (Session, error) {
	if callerID == receiverID {
		return Session{}, ErrSelfCall
	}

	caller, err := s.users.GetByID(callerID)
	if err != nil {
		return Session{}, fmt.Errorf("failed to get caller: %w", err)
	}
	receiver, err := s.users.GetByID(receiverID)
	if err != nil {
		return Session{}, fmt.Errorf("failed to get receiver: %w", err)
	}
	if receiver.Blocked {
		return Session{}, ErrUserBlocked
	}

	ceiling, kind := allowanceFor(caller)

	// Trial consumption is charged against the callee, and only when an
	// admin forces the call onto them.
	if caller.Role == models.RoleAdmin && receiver.TrialCallsRemaining > 0 {
		receiver.TrialCallsRemaining--
		if err := s.users.Update(receiver); err != nil {
			return Session{}, fmt.Errorf("failed to consume trial call: %w", err)
		}
	}

	record := &models.CallSession{
		ID:         uuid.NewString(),
		CallerID:   callerID,
		ReceiverID: receiverID,
		Kind:       kind,
		Status:     models.CallStatusOngoing,
		StartedAt:  time.Now(),
	}
	if err := s.store.Create(record); err != nil {
		return Session{}, fmt.Errorf("failed to persist call session: %w", err)
	}

	live := &liveSession{
		Session: Session{
			ID:         record.ID,
			CallerID:   callerID,
			ReceiverID: receiverID,
			Kind:       kind,
			Ceiling:    ceiling,
			State:      StateActive,
			StartedAt:  record.StartedAt,
		},
		privileged: caller.IsPrivileged(),
		record:     record,
	}

	s.mu.Lock()
	s.active[record.ID] = live
	s.mu.Unlock()

	return live.Session, nil
}

func (s *service) Get(sessionID string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live, ok := s.active[sessionID]
	if !ok {
		return Session{}, false
	}
	return live.Session, true
}

func (s *service) Advance(sessionID string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live, ok := s.active[sessionID]
	if !ok {
		return Session{}, false
	}
	if live.State == StateExpired {
		return live.Session, true
	}

	live.Elapsed++
	if !live.privileged && live.Elapsed >= live.Ceiling {
		live.State = StateExpired
	}
	return live.Session, true
}

func (s *service) RedeemMinutes(ctx context.Context, sessionID string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live, ok := s.active[sessionID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}

	// The debit either records a completed MINUTES_PURCHASE transaction or
	// fails without touching the balance; the session is only extended on
	// success.
	err := s.ledger.Debit(ctx, live.CallerID, RedeemPointsCost,
		models.TransactionTypeMinutesPurchase, RedeemReference)
	if err != nil {
		return live.Session, err
	}

	live.Ceiling += RedeemMinutes * 60
	live.State = StateActive
	return live.Session, nil
}

func (s *service) GrantPaidExtension(sessionID string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live, ok := s.active[sessionID]
	if !ok {
		return Session{}, false
	}

	live.Elapsed = 0
	live.Ceiling = PaidExtensionSeconds
	live.State = StateActive
	return live.Session, true
}

func (s *service) GrantPaidExtensionForUser(callerID uint) bool {
	s.mu.Lock()
	var id string
	for _, live := range s.active {
		if live.CallerID == callerID {
			id = live.ID
			break
		}
	}
	s.mu.Unlock()

	if id == "" {
		return false
	}
	_, ok := s.GrantPaidExtension(id)
	return ok
}

func (s *service) End(ctx context.Context, sessionID string) (Session, error) {
	s.mu.Lock()
	live, ok := s.active[sessionID]
	if ok {
		delete(s.active, sessionID)
	}
	s.mu.Unlock()

	if !ok {
		return Session{}, ErrSessionNotFound
	}

	now := time.Now()
	live.record.Duration = live.Elapsed
	live.record.Status = models.CallStatusEnded
	live.record.EndedAt = &now
	if err := s.store.Update(live.record); err != nil {
		return live.Session, fmt.Errorf("failed to persist call session: %w", err)
	}

	return live.Session, nil
}

// allowanceFor computes the starting ceiling and call kind for a caller.
func allowanceFor(caller *models.User) (int, models.CallKind) {
	switch {
	case caller.IsPrivileged():
		return UnlimitedCeiling, models.CallKindPremium
	case caller.HasTrialCalls():
		return TrialCeiling, models.CallKindTrial
	default:
		return LockedCeiling, models.CallKindPaid
	}
}
