package messaging

import "edcall/internal/models"

// UserStore is the subset of the user repository messaging needs. The
// admin lookup routes support threads.
type UserStore interface {
	GetByID(id uint) (*models.User, error)
	FirstAdmin() (*models.User, error)
}

// MessageStore persists and reads chat messages.
type MessageStore interface {
	Create(msg *models.Message) error
	Conversation(userID, peerID uint, channel models.MessageChannel, limit, offset int) ([]models.Message, error)
	Partners(userID uint, channel models.MessageChannel) ([]uint, error)
	MarkRead(receiverID, senderID uint, channel models.MessageChannel) error
}
