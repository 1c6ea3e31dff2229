package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"edcall/internal/models"
	"edcall/internal/repositories"

	"github.com/google/uuid"
)

// Service owns direct user-to-user chat and the support threads routed
// to the admin account.
type Service interface {
	// Send delivers a direct message. Blocked receivers are unreachable.
	Send(ctx context.Context, senderID, receiverID uint, body string) (*models.Message, error)

	// SendSupport delivers a message on the sender's support thread. A
	// non-admin sender's message is routed to the admin account; an admin
	// replies to an explicit receiver.
	SendSupport(ctx context.Context, senderID, receiverID uint, body string) (*models.Message, error)

	// Conversation lists the messages between the user and a peer, oldest
	// first, and marks the peer's messages to the user as read.
	Conversation(ctx context.Context, userID, peerID uint, channel models.MessageChannel, limit, offset int) ([]models.Message, error)

	// SupportConversation lists the user's support thread with the admin.
	SupportConversation(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error)

	// Partners lists the users the given user has a conversation with.
	Partners(ctx context.Context, userID uint, channel models.MessageChannel) ([]uint, error)
}

type service struct {
	users UserStore
	msgs  MessageStore
}

// NewService creates a new messaging service.
func NewService(users UserStore, msgs MessageStore) Service {
	if users == nil {
		panic("user store is required")
	}
	if msgs == nil {
		panic("message store is required")
	}

	return &service{
		users: users,
		msgs:  msgs,
	}
}

func (s *service) Send(ctx context.Context, senderID, receiverID uint, body string) (*models.Message, error) {
	return s.send(senderID, receiverID, models.ChannelDirect, body)
}

func (s *service) SendSupport(ctx context.Context, senderID, receiverID uint, body string) (*models.Message, error) {
	sender, err := s.users.GetByID(senderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sender: %w", err)
	}

	if sender.Role != models.RoleAdmin {
		admin, err := s.users.FirstAdmin()
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil, ErrNoAdmin
			}
			return nil, fmt.Errorf("failed to get admin: %w", err)
		}
		receiverID = admin.ID
	}

	return s.send(senderID, receiverID, models.ChannelSupport, body)
}

func (s *service) send(senderID, receiverID uint, channel models.MessageChannel, body string) (*models.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyBody
	}
	if senderID == receiverID {
		return nil, ErrSelfMessage
	}

	receiver, err := s.users.GetByID(receiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to get receiver: %w", err)
	}
	if receiver.Blocked {
		return nil, ErrUserBlocked
	}

	msg := &models.Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Channel:    channel,
		Body:       body,
	}
	if err := s.msgs.Create(msg); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return msg, nil
}

func (s *service) Conversation(ctx context.Context, userID, peerID uint, channel models.MessageChannel, limit, offset int) ([]models.Message, error) {
	msgs, err := s.msgs.Conversation(userID, peerID, channel, limit, offset)
	if err != nil {
		return nil, err
	}

	// Opening a conversation reads it.
	if err := s.msgs.MarkRead(userID, peerID, channel); err != nil {
		return nil, fmt.Errorf("failed to mark messages read: %w", err)
	}
	return msgs, nil
}

func (s *service) SupportConversation(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	admin, err := s.users.FirstAdmin()
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrNoAdmin
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return s.Conversation(ctx, userID, admin.ID, models.ChannelSupport, limit, offset)
}

func (s *service) Partners(ctx context.Context, userID uint, channel models.MessageChannel) ([]uint, error) {
	return s.msgs.Partners(userID, channel)
}
