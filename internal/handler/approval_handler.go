package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/chronos-room-api/internal/dto"
	"github.com/noah-isme/chronos-room-api/internal/models"
	"github.com/noah-isme/chronos-room-api/internal/service"
	appErrors "github.com/noah-isme/chronos-room-api/pkg/errors"
	"github.com/noah-isme/chronos-room-api/pkg/response"
)

type approvalService interface {
	ApproveReservation(ctx context.Context, reservationID string, newStatus models.ReservationStatus, approvedBy string, approverRole models.UserRole, comments string) (*service.ApprovalResult, error)
	RejectReservation(ctx context.Context, reservationID, rejectedBy string, rejectorRole models.UserRole, reason string) (*service.ApprovalResult, error)
	CancelReservation(ctx context.Context, reservationID, cancelledBy string) (*service.ApprovalResult, error)
	GetApprovalHistory(ctx context.Context, reservationID string) ([]models.ApprovalLog, error)
}

// ApprovalHandler exposes the reservation approval workflow.
type ApprovalHandler struct {
	approvals approvalService
}

// NewApprovalHandler builds a new handler.
func NewApprovalHandler(approvals approvalService) *ApprovalHandler {
	return &ApprovalHandler{approvals: approvals}
}

// Approve godoc
// @Summary Advance a reservation through the approval workflow
// @Tags Approvals
// @Accept json
// @Produce json
// @Param id path string true "Reservation id"
// @Param payload body dto.ApprovalRequest true "Approval payload"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /reservations/{id}/approve [put]
func (h *ApprovalHandler) Approve(c *gin.Context) {
	var req dto.ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid approval payload"))
		return
	}

	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	// The service enforces the transition and role tables; the handler only
	// resolves the target status. Advisors move PENDING forward, admins
	// finalize, unless the payload names an explicit target.
	target := models.ReservationStatus(req.Status)
	if target == "" {
		target = models.StatusAdvisorApproved
		if claims.Role == models.RoleAdmin {
			target = models.StatusApproved
		}
	}

	result, err := h.approvals.ApproveReservation(c.Request.Context(), c.Param("id"), target, claims.UserID, claims.Role, req.Comments)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, result)
}

// Reject godoc
// @Summary Reject a reservation
// @Tags Approvals
// @Accept json
// @Produce json
// @Param id path string true "Reservation id"
// @Param payload body dto.ApprovalRequest true "Rejection payload"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /reservations/{id}/reject [put]
func (h *ApprovalHandler) Reject(c *gin.Context) {
	var req dto.ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid rejection payload"))
		return
	}

	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	result, err := h.approvals.RejectReservation(c.Request.Context(), c.Param("id"), claims.UserID, claims.Role, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, result)
}

// Cancel godoc
// @Summary Cancel a reservation
// @Tags Approvals
// @Produce json
// @Param id path string true "Reservation id"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /reservations/{id}/cancel [put]
func (h *ApprovalHandler) Cancel(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	result, err := h.approvals.CancelReservation(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, result)
}

// History godoc
// @Summary Get the approval audit trail of a reservation
// @Tags Approvals
// @Produce json
// @Param id path string true "Reservation id"
// @Success 200 {object} response.Envelope
// @Router /reservations/{id}/approval-history [get]
func (h *ApprovalHandler) History(c *gin.Context) {
	logs, err := h.approvals.GetApprovalHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, logs, nil)
}

// respond maps rule violations to 422 while keeping the result body.
func (h *ApprovalHandler) respond(c *gin.Context, result *service.ApprovalResult) {
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	response.JSON(c, status, result, nil)
}
