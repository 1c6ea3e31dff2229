package messaging

import (
	"context"
	"testing"

	"edcall/internal/models"
	"edcall/internal/repositories"

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
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) FirstAdmin() (*models.User, error) {
	var admin *models.User
	for _, u := range f.users {
		if u.Role == models.RoleAdmin && (admin == nil || u.ID < admin.ID) {
			admin = u
		}
	}
	if admin == nil {
		return nil, repositories.ErrUserNotFound
	}
	return admin, nil
}

type fakeMessageStore struct {
	messages []models.Message
}

func (f *fakeMessageStore) Create(msg *models.Message) error {
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeMessageStore) Conversation(userID, peerID uint, channel models.MessageChannel, limit, offset int) ([]models.Message, error) {
	var out []models.Message
	for _, m := range f.messages {
		if m.Channel != channel {
			continue
		}
		if (m.SenderID == userID && m.ReceiverID == peerID) || (m.SenderID == peerID && m.ReceiverID == userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageStore) Partners(userID uint, channel models.MessageChannel) ([]uint, error) {
	seen := make(map[uint]bool)
	var out []uint
	for _, m := range f.messages {
		if m.Channel != channel {
			continue
		}
		var peer uint
		switch userID {
		case m.SenderID:
			peer = m.ReceiverID
		case m.ReceiverID:
			peer = m.SenderID
		default:
			continue
		}
		if !seen[peer] {
			seen[peer] = true
			out = append(out, peer)
		}
	}
	return out, nil
}

func (f *fakeMessageStore) MarkRead(receiverID, senderID uint, channel models.MessageChannel) error {
	for i, m := range f.messages {
		if m.Channel == channel && m.ReceiverID == receiverID && m.SenderID == senderID {
			f.messages[i].IsRead = true
		}
	}
	return nil
}

func setupMessaging() (*fakeUserStore, *fakeMessageStore, Service) {
	users := &fakeUserStore{users: map[uint]*models.User{
		1: {Model: gorm.Model{ID: 1}, Name: "Asha", Role: models.RoleUser},
		2: {Model: gorm.Model{ID: 2}, Name: "Juma", Role: models.RoleUser},
		3: {Model: gorm.Model{ID: 3}, Name: "Blocked", Role: models.RoleUser, Blocked: true},
		9: {Model: gorm.Model{ID: 9}, Name: "Admin", Role: models.RoleAdmin},
	}}
	msgs := &fakeMessageStore{}
	return users, msgs, NewService(users, msgs)
}

func TestService_Send(t *testing.T) {
	_, msgs, svc := setupMessaging()

	msg, err := svc.Send(context.Background(), 1, 2, "habari!")

	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, models.ChannelDirect, msg.Channel)
	assert.False(t, msg.IsRead, "new messages start unread")
	require.Len(t, msgs.messages, 1)
}

func TestService_Send_Failures(t *testing.T) {
	_, _, svc := setupMessaging()
	ctx := context.Background()

	_, err := svc.Send(ctx, 1, 2, "   ")
	assert.ErrorIs(t, err, ErrEmptyBody)

	_, err = svc.Send(ctx, 1, 1, "note to self")
	assert.ErrorIs(t, err, ErrSelfMessage)

	_, err = svc.Send(ctx, 1, 3, "hello?")
	assert.ErrorIs(t, err, ErrUserBlocked)

	_, err = svc.Send(ctx, 1, 404, "anyone there?")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestService_SendSupport_RoutesToAdmin(t *testing.T) {
	_, msgs, svc := setupMessaging()

	// The receiver a user supplies is ignored; support goes to the admin.
	msg, err := svc.SendSupport(context.Background(), 1, 2, "I need help")

	require.NoError(t, err)
	assert.Equal(t, uint(9), msg.ReceiverID)
	assert.Equal(t, models.ChannelSupport, msg.Channel)
	require.Len(t, msgs.messages, 1)
}

func TestService_SendSupport_AdminReply(t *testing.T) {
	_, _, svc := setupMessaging()

	msg, err := svc.SendSupport(context.Background(), 9, 1, "how can we help?")

	require.NoError(t, err)
	assert.Equal(t, uint(1), msg.ReceiverID)
	assert.Equal(t, models.ChannelSupport, msg.Channel)
}

func TestService_SendSupport_NoAdmin(t *testing.T) {
	users, _, _ := setupMessaging()
	delete(users.users, 9)
	svc := NewService(users, &fakeMessageStore{})

	_, err := svc.SendSupport(context.Background(), 1, 0, "hello?")
	assert.ErrorIs(t, err, ErrNoAdmin)
}

func TestService_Conversation_MarksRead(t *testing.T) {
	_, msgs, svc := setupMessaging()
	ctx := context.Background()

	_, err := svc.Send(ctx, 2, 1, "first")
	require.NoError(t, err)
	_, err = svc.Send(ctx, 1, 2, "second")
	require.NoError(t, err)

	conv, err := svc.Conversation(ctx, 1, 2, models.ChannelDirect, 50, 0)

	require.NoError(t, err)
	require.Len(t, conv, 2)
	// Opening the conversation reads the peer's messages, not our own.
	assert.True(t, msgs.messages[0].IsRead)
	assert.False(t, msgs.messages[1].IsRead)
}

func TestService_SupportConversation(t *testing.T) {
	_, _, svc := setupMessaging()
	ctx := context.Background()

	_, err := svc.SendSupport(ctx, 1, 0, "help me")
	require.NoError(t, err)
	_, err = svc.SendSupport(ctx, 9, 1, "on it")
	require.NoError(t, err)

	conv, err := svc.SupportConversation(ctx, 1, 50, 0)

	require.NoError(t, err)
	assert.Len(t, conv, 2)
}

func TestService_Partners(t *testing.T) {
	_, _, svc := setupMessaging()
	ctx := context.Background()

	_, err := svc.Send(ctx, 1, 2, "hi")
	require.NoError(t, err)
	_, err = svc.Send(ctx, 2, 1, "hey")
	require.NoError(t, err)
	_, err = svc.SendSupport(ctx, 1, 0, "help")
	require.NoError(t, err)

	partners, err := svc.Partners(ctx, 1, models.ChannelDirect)

	require.NoError(t, err)
	assert.Equal(t, []uint{2}, partners, "support threads stay out of the direct inbox")
}
