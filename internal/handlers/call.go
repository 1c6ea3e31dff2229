package handlers

import (
	"errors"
	"log"

	"edcall/internal/models"
	"edcall/internal/repositories"
	"edcall/internal/services/entitlement"
	"edcall/internal/services/ledger"
	"edcall/internal/utils"
	"edcall/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type CallHandler struct {
	entitlements  entitlement.Service
	scheduler     *entitlement.Scheduler
	ledgerService ledger.Service
	callRepo      repositories.CallSessionRepository
}

func NewCallHandler(entitlements entitlement.Service, scheduler *entitlement.Scheduler, ledgerService ledger.Service, callRepo repositories.CallSessionRepository) *CallHandler {
	return &CallHandler{
		entitlements:  entitlements,
		scheduler:     scheduler,
		ledgerService: ledgerService,
		callRepo:      callRepo,
	}
}

// StartCall opens a call session to the given receiver and starts its
// one-second entitlement timer.
func (h *CallHandler) StartCall(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var req struct {
		ReceiverID uint `json:"receiver_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if req.ReceiverID == 0 {
		return utils.BadRequest(c, "receiver_id is required")
	}

	session, err := h.entitlements.Start(c.Context(), claims.UserID, req.ReceiverID)
	if err != nil {
		switch {
		case errors.Is(err, entitlement.ErrSelfCall):
			return utils.BadRequest(c, "cannot call yourself")
		case errors.Is(err, entitlement.ErrUserBlocked):
			return utils.Forbidden(c, "user is not reachable")
		default:
			log.Printf("Failed to start call for user %d: %v", claims.UserID, err)
			return utils.InternalError(c, "failed to start call")
		}
	}

	h.scheduler.Track(session.ID)

	return utils.Created(c, sessionResponse(session))
}

// GetCall returns a snapshot of an ongoing call session. For calls that
// have already ended it falls back to the persisted audit record.
func (h *CallHandler) GetCall(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	sessionID := c.Params("id")

	if session, ok := h.entitlements.Get(sessionID); ok {
		if !participant(session, claims) {
			return utils.Forbidden(c, "not a participant of this call")
		}
		return utils.Success(c, sessionResponse(session))
	}

	record, err := h.callRepo.GetByID(sessionID)
	if err != nil {
		return utils.NotFound(c, "call not found")
	}
	if record.CallerID != claims.UserID && record.ReceiverID != claims.UserID && claims.Role != models.RoleAdmin {
		return utils.Forbidden(c, "not a participant of this call")
	}

	return utils.Success(c, record)
}

// GetHistory lists the user's past and ongoing calls, newest first.
func (h *CallHandler) GetHistory(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	p := pagination.ParseFromRequest(c)

	sessions, total, err := h.callRepo.ListByUser(claims.UserID, p.Limit, p.Offset)
	if err != nil {
		log.Printf("Failed to list calls for user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "failed to list calls")
	}

	p.Total = total
	return utils.Success(c, pagination.Response(p, sessions))
}

// RedeemMinutes spends points to extend the call's allowance in place.
func (h *CallHandler) RedeemMinutes(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	sessionID := c.Params("id")

	session, ok := h.entitlements.Get(sessionID)
	if !ok {
		return utils.NotFound(c, "call not found")
	}
	if session.CallerID != claims.UserID && claims.Role != models.RoleAdmin {
		return utils.Forbidden(c, "only the caller can redeem minutes")
	}

	session, err := h.entitlements.RedeemMinutes(c.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, entitlement.ErrSessionNotFound):
			return utils.NotFound(c, "call not found")
		case errors.Is(err, ledger.ErrInsufficientPoints):
			return utils.PaymentRequired(c, "not enough points")
		default:
			log.Printf("Failed to redeem minutes on call %s: %v", sessionID, err)
			return utils.InternalError(c, "failed to redeem minutes")
		}
	}

	return utils.Success(c, sessionResponse(session))
}

// EndCall tears the session down, stops its timer and awards completion
// points to the caller.
func (h *CallHandler) EndCall(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	sessionID := c.Params("id")

	session, ok := h.entitlements.Get(sessionID)
	if !ok {
		return utils.NotFound(c, "call not found")
	}
	if !participant(session, claims) {
		return utils.Forbidden(c, "not a participant of this call")
	}

	h.scheduler.Stop(sessionID)

	session, err := h.entitlements.End(c.Context(), sessionID)
	if err != nil {
		log.Printf("Failed to end call %s: %v", sessionID, err)
		return utils.InternalError(c, "failed to end call")
	}

	// Completed calls earn points. A call ended before its first tick
	// never connected, so it earns nothing.
	if session.Elapsed > 0 {
		if _, err := h.ledgerService.Award(c.Context(), session.CallerID, ledger.EarnCompletedCall); err != nil {
			log.Printf("Failed to award call points to user %d: %v", session.CallerID, err)
		}
	}

	return utils.Success(c, sessionResponse(session))
}

func participant(session entitlement.Session, claims *models.UserClaims) bool {
	return session.CallerID == claims.UserID ||
		session.ReceiverID == claims.UserID ||
		claims.Role == models.RoleAdmin
}

func sessionResponse(session entitlement.Session) fiber.Map {
	return fiber.Map{
		"id":          session.ID,
		"caller_id":   session.CallerID,
		"receiver_id": session.ReceiverID,
		"kind":        session.Kind,
		"elapsed":     session.Elapsed,
		"ceiling":     session.Ceiling,
		"remaining":   session.Remaining(),
		"state":       session.State,
		"started_at":  session.StartedAt,
	}
}
