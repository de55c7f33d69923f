package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pezimbron/fieldops-service/internal/dto"
	"github.com/pezimbron/fieldops-service/internal/matching"
	"github.com/pezimbron/fieldops-service/internal/middleware"
	"github.com/pezimbron/fieldops-service/internal/usecases"
)

type MatchHandler struct {
	paymentMatchUseCase usecases.PaymentMatchUseCase
	invoiceMatchUseCase usecases.InvoiceMatchUseCase
}

func NewMatchHandler(paymentMatchUseCase usecases.PaymentMatchUseCase, invoiceMatchUseCase usecases.InvoiceMatchUseCase) *MatchHandler {
	return &MatchHandler{
		paymentMatchUseCase: paymentMatchUseCase,
		invoiceMatchUseCase: invoiceMatchUseCase,
	}
}

// PaymentCandidates godoc
//
//	@Summary		List candidate jobs for a payment
//	@Description	Rank the authenticated client's billable jobs against an unmatched payment
//	@Tags			matching
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path	int	true	"Payment ID"
//	@Success		200	{object}	dto.APIResponse{data=usecases.PaymentCandidatePreview}
//	@Failure		400	{object}	dto.ErrorResponse
//	@Failure		404	{object}	dto.ErrorResponse
//	@Failure		409	{object}	dto.ErrorResponse
//	@Failure		500	{object}	dto.ErrorResponse
//	@Router			/payments/{id}/candidates [get]
func (h *MatchHandler) PaymentCandidates(c *gin.Context) {
	paymentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	preview, err := h.paymentMatchUseCase.PreviewCandidates(paymentID)
	if err != nil {
		status := http.StatusInternalServerError
		message := "Failed to rank candidates"

		switch err.Error() {
		case "payment not found":
			status = http.StatusNotFound
			message = "Payment not found"
		case "payment already matched":
			status = http.StatusConflict
			message = "Payment already matched"
		}

		c.JSON(status, dto.ErrorResponse{
			Success: false,
			Message: message,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Message: "Candidates ranked successfully",
		Data:    preview,
	})
}

// ConfirmPaymentMatch godoc
//
//	@Summary		Confirm a payment-to-job match
//	@Description	Generate the invoice for the chosen job, settle it with the payment amount and mark the payment matched
//	@Tags			matching
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path	int								true	"Payment ID"
//	@Param			match	body	dto.ConfirmPaymentMatchRequest	true	"Selected job"
//	@Success		200	{object}	dto.APIResponse{data=dto.ConfirmMatchResponse}
//	@Failure		400	{object}	dto.ErrorResponse
//	@Failure		404	{object}	dto.ErrorResponse
//	@Failure		409	{object}	dto.ErrorResponse
//	@Failure		500	{object}	dto.ErrorResponse
//	@Router			/payments/{id}/match [post]
func (h *MatchHandler) ConfirmPaymentMatch(c *gin.Context) {
	paymentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ConfirmPaymentMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Success: false,
			Message: "Invalid request data",
			Error:   err.Error(),
		})
		return
	}

	userID, _ := middleware.GetUserID(c)

	result, err := h.paymentMatchUseCase.ConfirmMatch(paymentID, req.JobID, userID)
	if err != nil {
		status := http.StatusInternalServerError
		message := "Failed to confirm match"

		switch err.Error() {
		case "payment not found", "job not found":
			status = http.StatusNotFound
			message = "Record not found"
		case "payment already matched", "payment was matched concurrently":
			status = http.StatusConflict
			message = "Payment already matched"
		case "payment and job belong to different clients", "job is not ready to invoice":
			status = http.StatusUnprocessableEntity
			message = "Job is not eligible for this payment"
		}

		c.JSON(status, dto.ErrorResponse{
			Success: false,
			Message: message,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Message: "Payment matched successfully",
		Data: dto.ConfirmMatchResponse{
			Payment: dto.ToPaymentResponse(result.Payment),
			Invoice: dto.ToInvoiceResponse(result.Invoice),
		},
	})
}

// PreviewAutoMatch godoc
//
//	@Summary		Preview invoice auto-matching
//	@Description	Pair unlinked invoices against completed jobs without writing anything
//	@Tags			matching
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dto.APIResponse{data=usecases.AutoMatchPreview}
//	@Failure		500	{object}	dto.ErrorResponse
//	@Router			/invoices/automatch/preview [get]
func (h *MatchHandler) PreviewAutoMatch(c *gin.Context) {
	preview, err := h.invoiceMatchUseCase.PreviewAutoMatch()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Success: false,
			Message: "Failed to compute auto-match preview",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Message: "Auto-match preview computed successfully",
		Data:    preview,
	})
}

// ApplyAutoMatch godoc
//
//	@Summary		Apply invoice auto-matching
//	@Description	Link matched jobs to their invoices at or above the requested confidence
//	@Tags			matching
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			options	body	dto.AutoMatchApplyRequest	false	"Apply options"
//	@Success		200	{object}	dto.APIResponse{data=usecases.AutoMatchApplyResult}
//	@Failure		400	{object}	dto.ErrorResponse
//	@Failure		500	{object}	dto.ErrorResponse
//	@Router			/invoices/automatch/apply [post]
func (h *MatchHandler) ApplyAutoMatch(c *gin.Context) {
	var req dto.AutoMatchApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Success: false,
			Message: "Invalid request data",
			Error:   err.Error(),
		})
		return
	}

	minConfidence := matching.ConfidenceHigh
	if req.MinConfidence != "" {
		parsed, err := matching.ParseConfidence(req.MinConfidence)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Success: false,
				Message: "Invalid confidence level",
				Error:   err.Error(),
			})
			return
		}
		minConfidence = parsed
	}

	userID, _ := middleware.GetUserID(c)

	result, err := h.invoiceMatchUseCase.ApplyAutoMatch(minConfidence, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Success: false,
			Message: "Failed to apply auto-match",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Message: "Auto-match applied successfully",
		Data:    result,
	})
}

// parseIDParam reads a positive integer path parameter or writes a 400
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Success: false,
			Message: "Invalid ID parameter",
			Error:   "parameter " + name + " must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}
