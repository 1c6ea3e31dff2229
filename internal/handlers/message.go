package handlers

import (
	"errors"
	"log"

	"edcall/internal/models"
	"edcall/internal/repositories"
	"edcall/internal/services/messaging"
	"edcall/internal/utils"
	"edcall/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type MessageHandler struct {
	messagingService messaging.Service
}

func NewMessageHandler(messagingService messaging.Service) *MessageHandler {
	return &MessageHandler{
		messagingService: messagingService,
	}
}

// SendMessage delivers a direct message to another user.
func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var req struct {
		ReceiverID uint   `json:"receiver_id"`
		Body       string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	msg, err := h.messagingService.Send(c.Context(), claims.UserID, req.ReceiverID, req.Body)
	if err != nil {
		return h.sendError(c, claims.UserID, err)
	}

	return utils.Created(c, msg)
}

// GetInbox lists the users the caller has a conversation with.
func (h *MessageHandler) GetInbox(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	partners, err := h.messagingService.Partners(c.Context(), claims.UserID, models.ChannelDirect)
	if err != nil {
		log.Printf("Failed to list conversations for user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "failed to list conversations")
	}

	return utils.Success(c, fiber.Map{"partners": partners})
}

// GetConversation lists the messages with a peer, oldest first, and
// marks the peer's messages as read.
func (h *MessageHandler) GetConversation(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	peerID, err := c.ParamsInt("id")
	if err != nil || peerID <= 0 {
		return utils.BadRequest(c, "invalid user id")
	}
	p := pagination.ParseFromRequest(c)

	msgs, err := h.messagingService.Conversation(c.Context(), claims.UserID, uint(peerID), models.ChannelDirect, p.Limit, p.Offset)
	if err != nil {
		log.Printf("Failed to load conversation for user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "failed to load conversation")
	}

	return utils.Success(c, msgs)
}

// SendSupportMessage posts to the caller's support thread. Non-admin
// messages are routed to the admin account; admins reply to an explicit
// receiver.
func (h *MessageHandler) SendSupportMessage(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var req struct {
		ReceiverID uint   `json:"receiver_id"`
		Body       string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	msg, err := h.messagingService.SendSupport(c.Context(), claims.UserID, req.ReceiverID, req.Body)
	if err != nil {
		return h.sendError(c, claims.UserID, err)
	}

	return utils.Created(c, msg)
}

// GetSupportConversation lists the caller's support thread.
func (h *MessageHandler) GetSupportConversation(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	p := pagination.ParseFromRequest(c)

	msgs, err := h.messagingService.SupportConversation(c.Context(), claims.UserID, p.Limit, p.Offset)
	if err != nil {
		if errors.Is(err, messaging.ErrNoAdmin) {
			return utils.NotFound(c, "support is unavailable")
		}
		log.Printf("Failed to load support thread for user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "failed to load support thread")
	}

	return utils.Success(c, msgs)
}

func (h *MessageHandler) sendError(c *fiber.Ctx, userID uint, err error) error {
	switch {
	case errors.Is(err, messaging.ErrEmptyBody), errors.Is(err, messaging.ErrSelfMessage):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, messaging.ErrUserBlocked):
		return utils.Forbidden(c, "user is not reachable")
	case errors.Is(err, repositories.ErrUserNotFound):
		return utils.NotFound(c, "user not found")
	case errors.Is(err, messaging.ErrNoAdmin):
		return utils.NotFound(c, "support is unavailable")
	default:
		log.Printf("Failed to send message from user %d: %v", userID, err)
		return utils.InternalError(c, "failed to send message")
	}
}
