package repositories

import (
	"edcall/internal/models"

	"gorm.io/gorm"
)

// MessageRepository persists direct and support chat messages.
type MessageRepository interface {
	Create(msg *models.Message) error

	// Conversation lists the messages exchanged between two users on a
	// channel, oldest first.
	Conversation(userID, peerID uint, channel models.MessageChannel, limit, offset int) ([]models.Message, error)

	// Partners lists the distinct users the given user has exchanged
	// messages with on a channel.
	Partners(userID uint, channel models.MessageChannel) ([]uint, error)

	// MarkRead marks every message from sender to receiver on a channel
	// as read.
	MarkRead(receiverID, senderID uint, channel models.MessageChannel) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new instance of MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(msg *models.Message) error {
	if err := r.db.Create(msg).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *messageRepository) Conversation(userID, peerID uint, channel models.MessageChannel, limit, offset int) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.
		Where("channel = ?", channel).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, peerID, peerID, userID).
		Order("created_at").
		Limit(limit).Offset(offset).
		Find(&msgs).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return msgs, nil
}

func (r *messageRepository) Partners(userID uint, channel models.MessageChannel) ([]uint, error) {
	var senders []uint
	err := r.db.Model(&models.Message{}).
		Where("channel = ? AND receiver_id = ?", channel, userID).
		Distinct().Pluck("sender_id", &senders).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}

	var receivers []uint
	err = r.db.Model(&models.Message{}).
		Where("channel = ? AND sender_id = ?", channel, userID).
		Distinct().Pluck("receiver_id", &receivers).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}

	seen := make(map[uint]bool, len(senders)+len(receivers))
	partners := make([]uint, 0, len(senders)+len(receivers))
	for _, id := range append(senders, receivers...) {
		if !seen[id] {
			seen[id] = true
			partners = append(partners, id)
		}
	}
	return partners, nil
}

func (r *messageRepository) MarkRead(receiverID, senderID uint, channel models.MessageChannel) error {
	err := r.db.Model(&models.Message{}).
		Where("channel = ? AND receiver_id = ? AND sender_id = ? AND is_read = ?",
			channel, receiverID, senderID, false).
		UpdateColumn("is_read", true).Error
	if err != nil {
		return ErrDatabaseOperation
	}
	return nil
}
