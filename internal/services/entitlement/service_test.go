package entitlement

import (
	"context"
	"errors"
	"testing"
	"time"

	"edcall/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserStore struct {
	users map[uint]*models.User
}

func (f *fakeUserStore) GetByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (f *fakeUserStore) Update(user *models.User) error {
	f.users[user.ID] = user
	return nil
}

type fakeSessionStore struct {
	created []*models.CallSession
	updated []*models.CallSession
}

func (f *fakeSessionStore) Create(cs *models.CallSession) error {
	f.created = append(f.created, cs)
	return nil
}

func (f *fakeSessionStore) Update(cs *models.CallSession) error {
	f.updated = append(f.updated, cs)
	return nil
}

type fakeLedger struct {
	err    error
	debits []int
}

func (f *fakeLedger) Debit(_ context.Context, _ uint, amount int, _ models.TransactionType, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.debits = append(f.debits, amount)
	return nil
}

func newFixture(callers ...*models.User) (*fakeUserStore, *fakeSessionStore, *fakeLedger, Service) {
	users := &fakeUserStore{users: make(map[uint]*models.User)}
	for _, u := range callers {
		users.users[u.ID] = u
	}
	store := &fakeSessionStore{}
	ledger := &fakeLedger{}
	return users, store, ledger, NewService(users, store, ledger)
}

func testUser(id uint, tier models.UserTier, role models.UserRole, trials int) *models.User {
	return &models.User{
		Model:               gorm.Model{ID: id},
		Name:                "Test User",
		Tier:                tier,
		Role:                role,
		TrialCallsRemaining: trials,
	}
}

func TestService_Start_Ceilings(t *testing.T) {
	tests := []struct {
		name        string
		caller      *models.User
		wantCeiling int
		wantKind    models.CallKind
	}{
		{
			name:        "admin gets the 24h cap",
			caller:      testUser(1, models.TierFree, models.RoleAdmin, 0),
			wantCeiling: UnlimitedCeiling,
			wantKind:    models.CallKindPremium,
		},
		{
			name:        "premium gets the 24h cap",
			caller:      testUser(1, models.TierPremium, models.RoleUser, 0),
			wantCeiling: UnlimitedCeiling,
			wantKind:    models.CallKindPremium,
		},
		{
			name:        "free with trials gets an hour",
			caller:      testUser(1, models.TierFree, models.RoleUser, 2),
			wantCeiling: TrialCeiling,
			wantKind:    models.CallKindTrial,
		},
		{
			name:        "free without trials expires immediately",
			caller:      testUser(1, models.TierFree, models.RoleUser, 0),
			wantCeiling: LockedCeiling,
			wantKind:    models.CallKindPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			receiver := testUser(2, models.TierFree, models.RoleUser, 0)
			_, store, _, svc := newFixture(tt.caller, receiver)

			sess, err := svc.Start(context.Background(), tt.caller.ID, receiver.ID)

			require.NoError(t, err)
			assert.Equal(t, tt.wantCeiling, sess.Ceiling)
			assert.Equal(t, tt.wantKind, sess.Kind)
			assert.Equal(t, StateActive, sess.State)
			assert.Equal(t, 0, sess.Elapsed)
			require.Len(t, store.created, 1)
			assert.Equal(t, models.CallStatusOngoing, store.created[0].Status)
		})
	}
}

func TestService_Start_AdminForcedCallConsumesTargetTrial(t *testing.T) {
	admin := testUser(1, models.TierPremium, models.RoleAdmin, 0)
	target := testUser(2, models.TierFree, models.RoleUser, 3)
	users, _, _, svc := newFixture(admin, target)

	_, err := svc.Start(context.Background(), admin.ID, target.ID)

	require.NoError(t, err)
	assert.Equal(t, 2, users.users[target.ID].TrialCallsRemaining)
}

func TestService_Start_PeerCallLeavesTrialsAlone(t *testing.T) {
	caller := testUser(1, models.TierFree, models.RoleUser, 3)
	target := testUser(2, models.TierFree, models.RoleUser, 3)
	users, _, _, svc := newFixture(caller, target)

	_, err := svc.Start(context.Background(), caller.ID, target.ID)

	require.NoError(t, err)
	assert.Equal(t, 3, users.users[target.ID].TrialCallsRemaining)
}

func TestService_Start_BlockedReceiver(t *testing.T) {
	caller := testUser(1, models.TierPremium, models.RoleUser, 0)
	target := testUser(2, models.TierFree, models.RoleUser, 0)
	target.Blocked = true
	_, _, _, svc := newFixture(caller, target)

	_, err := svc.Start(context.Background(), caller.ID, target.ID)

	assert.ErrorIs(t, err, ErrUserBlocked)
}

func TestService_Start_SelfCall(t *testing.T) {
	caller := testUser(1, models.TierPremium, models.RoleUser, 0)
	_, _, _, svc := newFixture(caller)

	_, err := svc.Start(context.Background(), caller.ID, caller.ID)

	assert.ErrorIs(t, err, ErrSelfCall)
}

func TestService_Advance_ExpiresLockedSessionAfterOneTick(t *testing.T) {
	caller := testUser(1, models.TierFree, models.RoleUser, 0)
	receiver := testUser(2, models.TierFree, models.RoleUser, 0)
	_, _, _, svc := newFixture(caller, receiver)

	sess, err := svc.Start(context.Background(), caller.ID, receiver.ID)
	require.NoError(t, err)
	require.Equal(t, LockedCeiling, sess.Ceiling)

	sess, ok := svc.Advance(sess.ID)
	require.True(t, ok)
	assert.Equal(t, StateExpired, sess.State)
	assert.Equal(t, 1, sess.Elapsed)

	// Expired sessions stop counting.
	sess, ok = svc.Advance(sess.ID)
	require.True(t, ok)
	assert.Equal(t, 1, sess.Elapsed)
	assert.Equal(t, StateExpired, sess.State)
}

func TestService_Advance_PrivilegedNeverExpires(t *testing.T) {
	caller := testUser(1, models.TierPremium, models.RoleUser, 0)
	receiver := testUser(2, models.TierFree, models.RoleUser, 0)
	_, _, _, svc := newFixture(caller, receiver)

	sess, err := svc.Start(context.Background(), caller.ID, receiver.ID)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		sess, _ = svc.Advance(sess.ID)
	}
	assert.Equal(t, 10, sess.Elapsed)
	assert.Equal(t, StateActive, sess.State)
}

func TestService_RedeemMinutes(t *testing.T) {
	caller := testUser(1, models.TierFree, models.RoleUser, 0)
	receiver := testUser(2, models.TierFree, models.RoleUser, 0)
	_, _, ledger, svc := newFixture(caller, receiver)

	sess, err := svc.Start(context.Background(), caller.ID, receiver.ID)
	require.NoError(t, err)

	// Run the session into expiry first.
	sess, _ = svc.Advance(sess.ID)
	require.Equal(t, StateExpired, sess.State)

	got, err := svc.RedeemMinutes(context.Background(), sess.ID)

	require.NoError(t, err)
	assert.Equal(t, []int{RedeemPointsCost}, ledger.debits)
	assert.Equal(t, LockedCeiling+RedeemMinutes*60, got.Ceiling)
	assert.Equal(t, StateActive, got.State)
	// Elapsed time is preserved on the redemption path.
	assert.Equal(t, sess.Elapsed, got.Elapsed)
}

func TestService_RedeemMinutes_InsufficientPoints(t *testing.T) {
	caller := testUser(1, models.TierFree, models.RoleUser, 0)
	receiver := testUser(2, models.TierFree, models.RoleUser, 0)
	_, _, ledger, svc := newFixture(caller, receiver)
	ledger.err = errors.New("insufficient points")

	sess, err := svc.Start(context.Background(), caller.ID, receiver.ID)
	require.NoError(t, err)
	sess, _ = svc.Advance(sess.ID)

	got, err := svc.RedeemMinutes(context.Background(), sess.ID)

	assert.Error(t, err)
	assert.Equal(t, sess.Ceiling, got.Ceiling)
	assert.Equal(t, sess.Elapsed, got.Elapsed)
	assert.Equal(t, StateExpired, got.State)
}

func TestService_GrantPaidExtension_ResetsElapsed(t *testing.T) {
	caller := testUser(1, models.TierFree, models.RoleUser, 0)
	receiver := testUser(2, models.TierFree, models.RoleUser, 0)
	_, _, _, svc := newFixture(caller, receiver)

	sess, err := svc.Start(context.Background(), caller.ID, receiver.ID)
	require.NoError(t, err)
	sess, _ = svc.Advance(sess.ID)
	require.Equal(t, StateExpired, sess.State)

	got, ok := svc.GrantPaidExtension(sess.ID)

	require.True(t, ok)
	assert.Equal(t, 0, got.Elapsed)
	assert.Equal(t, PaidExtensionSeconds, got.Ceiling)
	assert.Equal(t, StateActive, got.State)
}

func TestService_GrantPaidExtensionForUser(t *testing.T) {
	caller := testUser(1, models.TierFree, models.RoleUser, 0)
	receiver := testUser(2, models.TierFree, models.RoleUser, 0)
	_, _, _, svc := newFixture(caller, receiver)

	_, err := svc.Start(context.Background(), caller.ID, receiver.ID)
	require.NoError(t, err)

	assert.True(t, svc.GrantPaidExtensionForUser(caller.ID))
	assert.False(t, svc.GrantPaidExtensionForUser(999))
}

func TestService_End_PersistsAndGuardsDanglingTimer(t *testing.T) {
	caller := testUser(1, models.TierFree, models.RoleUser, 2)
	receiver := testUser(2, models.TierFree, models.RoleUser, 0)
	_, store, _, svc := newFixture(caller, receiver)

	sess, err := svc.Start(context.Background(), caller.ID, receiver.ID)
	require.NoError(t, err)
	svc.Advance(sess.ID)
	svc.Advance(sess.ID)

	ended, err := svc.End(context.Background(), sess.ID)

	require.NoError(t, err)
	assert.Equal(t, 2, ended.Elapsed)
	require.Len(t, store.updated, 1)
	assert.Equal(t, models.CallStatusEnded, store.updated[0].Status)
	assert.Equal(t, 2, store.updated[0].Duration)

	// A stale timer firing after teardown must find nothing to mutate.
	_, ok := svc.Advance(sess.ID)
	assert.False(t, ok)

	_, err = svc.End(context.Background(), sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestScheduler_TicksAndStops(t *testing.T) {
	caller := testUser(1, models.TierFree, models.RoleUser, 2)
	receiver := testUser(2, models.TierFree, models.RoleUser, 0)
	_, _, _, svc := newFixture(caller, receiver)

	sess, err := svc.Start(context.Background(), caller.ID, receiver.ID)
	require.NoError(t, err)

	sched := NewScheduler(svc, 5*time.Millisecond)
	sched.Track(sess.ID)
	defer sched.StopAll()

	assert.Eventually(t, func() bool {
		got, ok := svc.Get(sess.ID)
		return ok && got.Elapsed > 0
	}, time.Second, 5*time.Millisecond)

	// Ending the session makes every later tick a no-op.
	_, err = svc.End(context.Background(), sess.ID)
	require.NoError(t, err)
	sched.Stop(sess.ID)

	_, ok := svc.Get(sess.ID)
	assert.False(t, ok)
}
