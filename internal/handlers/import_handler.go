package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pezimbron/fieldops-service/internal/dto"
	"github.com/pezimbron/fieldops-service/internal/importer"
	"github.com/pezimbron/fieldops-service/internal/middleware"
	"github.com/pezimbron/fieldops-service/internal/usecases"
)

type ImportHandler struct {
	partnerImportUseCase usecases.PartnerImportUseCase
}

func NewImportHandler(partnerImportUseCase usecases.PartnerImportUseCase) *ImportHandler {
	return &ImportHandler{
		partnerImportUseCase: partnerImportUseCase,
	}
}

// ImportPartnerFile godoc
//
//	@Summary		Reconcile a partner payout file
//	@Description	Upload a partner CSV or XLSX file, match its rows against open jobs and optionally record the payouts
//	@Tags			imports
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			file			formData	file	true	"Partner CSV or XLSX file"
//	@Param			action			formData	string	false	"preview (default) or apply"
//	@Param			selected_ids	formData	string	false	"Comma-separated row IDs to apply; empty applies high-confidence rows only"
//	@Success		200	{object}	dto.APIResponse{data=usecases.PartnerImportPreview}
//	@Failure		400	{object}	dto.ErrorResponse
//	@Failure		422	{object}	dto.ErrorResponse
//	@Failure		500	{object}	dto.ErrorResponse
//	@Router			/imports/partner [post]
func (h *ImportHandler) ImportPartnerFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Success: false,
			Message: "Missing file upload",
			Error:   err.Error(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Success: false,
			Message: "Failed to open uploaded file",
			Error:   err.Error(),
		})
		return
	}
	defer file.Close()

	action := strings.ToLower(strings.TrimSpace(c.PostForm("action")))
	if action == "" {
		action = "preview"
	}

	switch action {
	case "preview":
		preview, err := h.partnerImportUseCase.Preview(fileHeader.Filename, file)
		if err != nil {
			writeImportError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.APIResponse{
			Success: true,
			Message: "Partner file previewed successfully",
			Data:    preview,
		})

	case "apply":
		var selectedIDs []string
		if raw := strings.TrimSpace(c.PostForm("selected_ids")); raw != "" {
			for _, id := range strings.Split(raw, ",") {
				if id = strings.TrimSpace(id); id != "" {
					selectedIDs = append(selectedIDs, id)
				}
			}
		}

		userID, _ := middleware.GetUserID(c)

		result, err := h.partnerImportUseCase.Apply(fileHeader.Filename, file, selectedIDs, userID)
		if err != nil {
			writeImportError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.APIResponse{
			Success: true,
			Message: "Partner file applied successfully",
			Data:    result,
		})

	default:
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Success: false,
			Message: "Invalid action",
			Error:   "action must be preview or apply",
		})
	}
}

// writeImportError distinguishes malformed uploads from server faults
func writeImportError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Failed to process partner file"

	if errors.Is(err, importer.ErrNoRows) || errors.Is(err, importer.ErrNoUsableColumns) ||
		strings.Contains(err.Error(), "malformed") {
		status = http.StatusUnprocessableEntity
		message = "Partner file is not usable"
	}

	c.JSON(status, dto.ErrorResponse{
		Success: false,
		Message: message,
		Error:   err.Error(),
	})
}
