package handlers

import (
	"log"

	"edcall/internal/models"
	"edcall/internal/repositories"
	"edcall/internal/services/registry"
	"edcall/internal/utils"
	"edcall/internal/utils/pagination"
	"edcall/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler exposes the moderation console: user listing, transaction
// approval and the per-user moderation actions.
type AdminHandler struct {
	registryService registry.Service
	userRepo        repositories.UserRepository
	txRepo          repositories.TransactionRepository
}

func NewAdminHandler(registryService registry.Service, userRepo repositories.UserRepository, txRepo repositories.TransactionRepository) *AdminHandler {
	return &AdminHandler{
		registryService: registryService,
		userRepo:        userRepo,
		txRepo:          txRepo,
	}
}

// GetUsers lists users with pagination.
func (h *AdminHandler) GetUsers(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	users, total, err := h.userRepo.List(p.Offset, p.Limit)
	if err != nil {
		log.Printf("Failed to list users: %v", err)
		return utils.InternalError(c, "failed to list users")
	}

	p.Total = total
	return utils.Success(c, pagination.Response(p, usersResponse(users)))
}

// GetTransactions lists transactions with pagination, optionally filtered
// by status.
func (h *AdminHandler) GetTransactions(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	var (
		txs   []models.Transaction
		total int64
		err   error
	)
	if raw := c.Query("status"); raw != "" {
		status := models.TransactionStatus(raw)
		if !validation.ValidTransactionStatus(status) {
			return utils.BadRequest(c, "unknown status: "+raw)
		}
		txs, total, err = h.txRepo.ListByStatus(status, p.Limit, p.Offset)
	} else {
		txs, total, err = h.txRepo.List(p.Limit, p.Offset)
	}
	if err != nil {
		log.Printf("Failed to list transactions: %v", err)
		return utils.InternalError(c, "failed to list transactions")
	}

	p.Total = total
	return utils.Success(c, pagination.Response(p, txs))
}

// ApproveTransaction completes a pending transaction and applies its side
// effects. Approving an unknown or already-settled transaction is a no-op.
func (h *AdminHandler) ApproveTransaction(c *fiber.Ctx) error {
	txID := c.Params("id")

	if err := h.registryService.Approve(c.Context(), txID); err != nil {
		log.Printf("Failed to approve transaction %s: %v", txID, err)
		return utils.InternalError(c, "failed to approve transaction")
	}

	return utils.Success(c, fiber.Map{"message": "transaction approved"})
}

// RejectTransaction marks a pending transaction rejected.
func (h *AdminHandler) RejectTransaction(c *fiber.Ctx) error {
	txID := c.Params("id")

	if err := h.registryService.Reject(c.Context(), txID); err != nil {
		log.Printf("Failed to reject transaction %s: %v", txID, err)
		return utils.InternalError(c, "failed to reject transaction")
	}

	return utils.Success(c, fiber.Map{"message": "transaction rejected"})
}

// VerifyUser sets a user's verification status.
func (h *AdminHandler) VerifyUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return utils.BadRequest(c, "invalid user id")
	}

	var req struct {
		Status models.VerificationStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	if err := h.registryService.Verify(c.Context(), uint(userID), req.Status); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	return utils.Success(c, fiber.Map{"message": "verification status updated"})
}

// BlockUser flips a user's blocked flag.
func (h *AdminHandler) BlockUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return utils.BadRequest(c, "invalid user id")
	}

	var req struct {
		Blocked bool `json:"blocked"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	if err := h.registryService.SetBlocked(c.Context(), uint(userID), req.Blocked); err != nil {
		log.Printf("Failed to update blocked flag for user %d: %v", userID, err)
		return utils.InternalError(c, "failed to update user")
	}

	return utils.Success(c, fiber.Map{"message": "user updated"})
}

// RefillTrials resets a user's trial call counter.
func (h *AdminHandler) RefillTrials(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return utils.BadRequest(c, "invalid user id")
	}

	if err := h.registryService.RefillTrials(c.Context(), uint(userID)); err != nil {
		log.Printf("Failed to refill trials for user %d: %v", userID, err)
		return utils.InternalError(c, "failed to refill trials")
	}

	return utils.Success(c, fiber.Map{"message": "trial calls refilled"})
}

// DeleteUser removes a user entirely. Deleting an unknown user is a no-op.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return utils.BadRequest(c, "invalid user id")
	}

	if err := h.registryService.Remove(c.Context(), uint(userID)); err != nil {
		log.Printf("Failed to delete user %d: %v", userID, err)
		return utils.InternalError(c, "failed to delete user")
	}

	return utils.Success(c, fiber.Map{"message": "user deleted"})
}
