package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "carbontrack/internal/errors"
	"carbontrack/internal/services"
)

// ReportHandler handles report export and delivery
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// EmailReportRequest represents the e-mail delivery payload
type EmailReportRequest struct {
	Email string `json:"email" binding:"required,contains=@,max=255"`
}

var emailFieldErrors = map[string]*apperrors.AppError{
	"Email": apperrors.ErrInvalidEmail,
	"email": apperrors.ErrInvalidEmail,
}

// DownloadPDF streams the caller's report as a PDF attachment
// @Summary     Download PDF report
// @Tags        reports
// @Produce     application/pdf
// @Security    BearerAuth
// @Param       X-Guest-Session header string false "Guest session id"
// @Success     200 {file} binary
// @Failure     500 {object} ErrorResponse "Report generation failed"
// @Router      /reports/pdf [get]
func (h *ReportHandler) DownloadPDF(c *gin.Context) {
	session, err := sessionFrom(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	doc, err := h.reportService.Export(c.Request.Context(), session)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	c.Header("X-Report-Pages", strconv.Itoa(doc.Pages))
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}

// EmailReport sends the caller's report to an e-mail address
// @Summary     E-mail PDF report
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       X-Guest-Session header string false "Guest session id"
// @Param       request body EmailReportRequest true "Recipient"
// @Success     200 {object} MessageResponse
// @Failure     400 {object} ErrorResponse "Invalid e-mail address"
// @Failure     429 {object} ErrorResponse "Rate limited"
// @Failure     502 {object} ErrorResponse "Delivery failed"
// @Failure     503 {object} ErrorResponse "E-mail delivery disabled"
// @Router      /reports/email [post]
func (h *ReportHandler) EmailReport(c *gin.Context) {
	if !h.reportService.EmailEnabled() {
		respondWithError(c, apperrors.ErrNotificationsDisabled)
		return
	}

	var req EmailReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err, emailFieldErrors))
		return
	}

	session, err := sessionFrom(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.reportService.Email(c.Request.Context(), session, req.Email); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: fmt.Sprintf("Report sent to %s", req.Email)})
}
