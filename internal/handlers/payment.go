package handlers

import (
	"errors"
	"log"

	"edcall/internal/models"
	"edcall/internal/services/ledger"
	"edcall/internal/services/registry"
	"edcall/internal/utils"
	"edcall/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	registryService registry.Service
	ledgerService   ledger.Service
}

func NewPaymentHandler(registryService registry.Service, ledgerService ledger.Service) *PaymentHandler {
	return &PaymentHandler{
		registryService: registryService,
		ledgerService:   ledgerService,
	}
}

// InitiatePayment records a manual mobile-money payment awaiting admin
// approval.
func (h *PaymentHandler) InitiatePayment(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var req struct {
		Amount    int                    `json:"amount"`
		Type      models.TransactionType `json:"type"`
		Provider  string                 `json:"provider"`
		Reference string                 `json:"reference"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	tx, err := h.registryService.InitiatePayment(c.Context(), registry.PaymentRequest{
		UserID:    claims.UserID,
		Amount:    req.Amount,
		Type:      req.Type,
		Provider:  req.Provider,
		Reference: req.Reference,
	})
	if err != nil {
		if errors.Is(err, registry.ErrInvalidType) || errors.Is(err, registry.ErrInvalidAmount) {
			return utils.BadRequest(c, err.Error())
		}
		log.Printf("Failed to initiate payment for user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "failed to initiate payment")
	}

	return utils.Created(c, tx)
}

// GetBalance returns the authenticated user's points balance.
func (h *PaymentHandler) GetBalance(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	balance, err := h.ledgerService.Balance(c.Context(), claims.UserID)
	if err != nil {
		return utils.NotFound(c, "user not found")
	}

	return utils.Success(c, fiber.Map{"points": balance})
}

// GetHistory lists the authenticated user's transactions, newest first.
func (h *PaymentHandler) GetHistory(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	p := pagination.ParseFromRequest(c)

	txs, total, err := h.ledgerService.History(c.Context(), claims.UserID, p.Limit, p.Offset)
	if err != nil {
		log.Printf("Failed to list transactions for user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "failed to list transactions")
	}

	p.Total = total
	return utils.Success(c, pagination.Response(p, txs))
}

// EarnPoints credits the fixed rate for an earning event.
func (h *PaymentHandler) EarnPoints(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var req struct {
		Event ledger.EarnEvent `json:"event"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	awarded, err := h.ledgerService.Award(c.Context(), claims.UserID, req.Event)
	if err != nil {
		if errors.Is(err, ledger.ErrUnknownEarnEvent) {
			return utils.BadRequest(c, "unknown earning event")
		}
		log.Printf("Failed to award points to user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "failed to award points")
	}

	return utils.Success(c, fiber.Map{
		"event":   req.Event,
		"awarded": awarded,
	})
}
