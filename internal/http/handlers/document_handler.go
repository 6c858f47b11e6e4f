// Document HTTP handlers.
//
// This file exposes REST endpoints for saved documents:
//   - GET /documents   (history, risk filter, paginated, ETag support)
//   - GET /dashboard   (aggregated stats and chart series)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses (including
// conditional responses).
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/documind/go-documind-backend/internal/analytics"
	"github.com/documind/go-documind-backend/internal/domain"
	"github.com/documind/go-documind-backend/internal/repo"
	"github.com/documind/go-documind-backend/internal/services"
)

// ListDocumentsResponse wraps a page of documents and pagination information.
type ListDocumentsResponse struct {
	Documents  []domain.Document `json:"documents"`
	Pagination Pagination        `json:"pagination"`
}

// ListDocuments godoc
// @ID          listDocuments
// @Summary     List saved documents (paginated)
// @Description Returns a page of the account's documents, newest first. The risk query narrows the list to high-risk documents. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Documents
// @Produce     json
//
// @Param       Authorization  header  string  true  "Bearer token"
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
// @Param       risk           query   string  false "Risk filter"      Enums(all, high_risk) default(all)
// @Param       page           query   int     false "Page number"      minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"   minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListDocumentsResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /documents [get]
func (h *Handlers) ListDocuments(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)
	page, pageSize := clampPagination(c)

	risk := strings.TrimSpace(c.Query("risk"))
	if risk == "" {
		risk = analytics.FilterAll
	}

	// ETag pre-check (best effort). The tag folds in the filter so a
	// filtered and an unfiltered view never share cache entries.
	var db *gorm.DB
	if svc, okSvc := h.docSvc.(*services.DocumentService); okSvc {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.DocumentsStats(ctx, db, uid)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"docs:%s:%s:%d:%d"`, uid, risk, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, total, err := h.docSvc.List(ctx, uid, risk, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	resp := ListDocumentsResponse{
		Documents: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	}
	ok(c, http.StatusOK, resp)
}

// Dashboard godoc
// @ID          dashboard
// @Summary     Account dashboard
// @Description Returns spend/volume stats, the monthly spend series, and the contract risk distribution over all saved documents.
// @Tags        Documents
// @Produce     json
//
// @Param       Authorization  header  string  true  "Bearer token"
//
// @Success     200  {object} services.Dashboard
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /dashboard [get]
func (h *Handlers) Dashboard(c *gin.Context) {
	dash, err := h.docSvc.Dashboard(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, dash)
}
