// Ingestion HTTP handlers.
//
// This file exposes the batch extraction endpoint:
//   - POST /documents/extract   (multipart upload, sequential processing)
//
// The endpoint accepts multiple files in one request, runs them through the
// ingestion workflow in selection order, and returns one outcome per file.
// Guests (no bearer token) get extraction results but nothing is persisted.
// Account holders may send an Idempotency-Key so a retried request does not
// re-run the batch against the external extraction service.
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/documind/go-documind-backend/internal/http/middleware"
	"github.com/documind/go-documind-backend/internal/ingest"
	"github.com/documind/go-documind-backend/internal/repo"
	"github.com/documind/go-documind-backend/internal/services"
)

// idemScopeExtract namespaces idempotency records for extraction batches.
const idemScopeExtract = "extract"

// ExtractResponse wraps an extraction batch's ordered outcomes.
type ExtractResponse struct {
	BatchID  string           `json:"batch_id"`
	Outcomes []ingest.Outcome `json:"outcomes,omitempty"`
}

// ExtractBatch godoc
// @ID          extractBatch
// @Summary     Extract data from uploaded documents
// @Description Processes the uploaded files one at a time and returns a per-file outcome list. Works without a token (results are not saved). With a token, successful extractions are saved to the account's history.
// @Tags        Documents
// @Accept      multipart/form-data
// @Produce     json
//
// @Param       Authorization    header  string  false "Bearer token (optional; guests allowed)"
// @Param       Idempotency-Key  header  string  false "Dedupe key for safe retries"
// @Param       files            formData file    true  "One or more documents (PDF, image)"
// @Param       doc_type         formData string  false "Force extraction schema"  Enums(invoice, contract)
//
// @Success     200  {object}  handlers.ExtractResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /documents/extract [post]
func (h *Handlers) ExtractBatch(c *gin.Context) {
	ctx := c.Request.Context()
	currentUser := userID(c)

	// Idempotency (replay path) – read validated key if present.
	idemKey, _ := middleware.GetIdempotencyKey(c)
	if idemKey != "" && currentUser != "" {
		if svc, okSvc := h.ingestSvc.(*services.IngestService); okSvc && svc.DB != nil {
			if rec, err := repo.GetIdempotency(ctx, svc.DB, currentUser, idemScopeExtract, idemKey, time.Now().UTC()); err == nil && rec != nil {
				c.Header("Idempotency-Replayed", "true")
				ok(c, http.StatusOK, ExtractResponse{BatchID: rec.BatchID})
				return
			}
		}
	}

	form, err := c.MultipartForm()
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "multipart form with files required")
		return
	}
	uploads := form.File["files"]
	if len(uploads) == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "no files provided")
		return
	}
	hint := strings.TrimSpace(c.PostForm("doc_type"))

	files := make([]ingest.File, 0, len(uploads))
	for _, fh := range uploads {
		src, err := fh.Open()
		if err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("unreadable upload %q", fh.Filename))
			return
		}
		content, err := io.ReadAll(src)
		_ = src.Close()
		if err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("unreadable upload %q", fh.Filename))
			return
		}
		files = append(files, ingest.File{
			Name:     filepath.Base(fh.Filename),
			Content:  content,
			TypeHint: hint,
		})
	}

	outcomes, err := h.ingestSvc.Process(ctx, currentUser, files)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyBatch):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "no files provided")
		case errors.Is(err, services.ErrBatchTooLarge):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "too many files in one batch")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeExtractFailed, err.Error())
		}
		return
	}

	batchID := uuid.NewString()

	// Idempotency (store path) – best effort.
	if idemKey != "" && currentUser != "" {
		if svc, okSvc := h.ingestSvc.(*services.IngestService); okSvc && svc.DB != nil {
			ttl := 24 * time.Hour
			_, _ = repo.CreateIdempotency(ctx, svc.DB, currentUser, idemScopeExtract, idemKey, batchID, http.StatusOK, ttl)
		}
	}

	ok(c, http.StatusOK, ExtractResponse{BatchID: batchID, Outcomes: outcomes})
}
