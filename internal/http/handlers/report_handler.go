// Report HTTP handlers.
//
// This file exposes the report generation endpoint:
//   - POST /documents/reports   (spreadsheet for invoices, summary for contracts)
//
// The client sends the extraction payload back together with the desired
// artifact kind; the response streams the generated file with a derived
// download filename.
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/documind/go-documind-backend/internal/clients/extraction"
	"github.com/documind/go-documind-backend/internal/domain"
	"github.com/documind/go-documind-backend/internal/services"
)

// ReportRequest is the JSON payload for generating a report artifact.
type ReportRequest struct {
	// Kind selects the artifact: "spreadsheet" (invoices) or "summary" (contracts).
	Kind string `json:"kind" binding:"required" example:"spreadsheet"`
	// Result is the extraction payload the artifact is built from.
	Result *domain.ExtractionResult `json:"result" binding:"required"`
}

// GenerateReport godoc
// @ID          generateReport
// @Summary     Generate a report artifact
// @Description Builds a downloadable Excel export (invoices) or text summary (contracts) from an extraction payload.
// @Tags        Documents
// @Accept      json
// @Produce     application/octet-stream
//
// @Param       Authorization  header  string  true  "Bearer token"
// @Param       body           body    handlers.ReportRequest  true  "Report payload"
//
// @Success     200  {file}    file    "Generated artifact"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     429  {object}  handlers.ErrorResponse  "Generator rate limited"
// @Failure     502  {object}  handlers.ErrorResponse  "Generator unavailable"
// @Router      /documents/reports [post]
func (h *Handlers) GenerateReport(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Result == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "kind and result required")
		return
	}

	var kind extraction.ReportKind
	switch req.Kind {
	case "spreadsheet":
		kind = extraction.ReportSpreadsheet
	case "summary":
		kind = extraction.ReportSummary
	default:
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "kind must be spreadsheet or summary")
		return
	}

	art, err := h.reportSvc.Generate(c.Request.Context(), req.Result, kind)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWrongReportKind):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "report kind does not match document type")
		case errors.Is(err, services.ErrExtractRateLimited):
			fail(c, http.StatusTooManyRequests, ErrCodeExtractRateLimited, "rate limit reached, wait a moment before retrying")
		case errors.Is(err, services.ErrExtractUnavailable):
			fail(c, http.StatusBadGateway, ErrCodeUpstreamDown, "report generator unavailable")
		default:
			fail(c, http.StatusBadGateway, ErrCodeReportFailed, err.Error())
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Filename))
	c.Data(http.StatusOK, art.ContentType, art.Content)
}
