package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/documind/go-documind-backend/internal/clients/extraction"
	"github.com/documind/go-documind-backend/internal/domain"
	"github.com/documind/go-documind-backend/internal/services"
)

// fakeReportSvc records the requested kind.
type fakeReportSvc struct {
	gotKind extraction.ReportKind
	art     *services.Artifact
	err     error
}

func (f *fakeReportSvc) Generate(_ context.Context, _ *domain.ExtractionResult, kind extraction.ReportKind) (*services.Artifact, error) {
	f.gotKind = kind
	return f.art, f.err
}

func newReportRouter(svc ReportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(nil, nil, nil, nil, svc)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", "u1"); c.Next() })
	r.POST("/documents/reports", h.GenerateReport)
	return r
}

func postReport(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/documents/reports", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateReport_StreamsArtifact(t *testing.T) {
	svc := &fakeReportSvc{art: &services.Artifact{
		Filename:    "Invoice_Acme.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     []byte("xlsx-bytes"),
	}}
	r := newReportRouter(svc)

	w := postReport(t, r, `{"kind":"spreadsheet","result":{"document_type":"invoice","vendor_name":"Acme"}}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "Invoice_Acme.xlsx") {
		t.Fatalf("unexpected Content-Disposition %q", cd)
	}
	if w.Body.String() != "xlsx-bytes" {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
	if svc.gotKind != extraction.ReportSpreadsheet {
		t.Fatalf("unexpected kind %q", svc.gotKind)
	}
}

func TestGenerateReport_Validation(t *testing.T) {
	r := newReportRouter(&fakeReportSvc{})

	// unknown kind
	w := postReport(t, r, `{"kind":"pdf","result":{"document_type":"invoice"}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown kind: status=%d", w.Code)
	}

	// missing result
	w = postReport(t, r, `{"kind":"summary"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing result: status=%d", w.Code)
	}
}

func TestGenerateReport_ErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{services.ErrWrongReportKind, http.StatusBadRequest, "bad_request"},
		{services.ErrExtractRateLimited, http.StatusTooManyRequests, "extract_rate_limited"},
		{services.ErrExtractUnavailable, http.StatusBadGateway, "upstream_unavailable"},
	}
	for _, tc := range cases {
		r := newReportRouter(&fakeReportSvc{err: tc.err})
		w := postReport(t, r, `{"kind":"summary","result":{"document_type":"contract"}}`)
		if w.Code != tc.status {
			t.Fatalf("%v: status=%d want %d", tc.err, w.Code, tc.status)
		}
		if !strings.Contains(w.Body.String(), tc.code) {
			t.Fatalf("%v: expected code %q in %s", tc.err, tc.code, w.Body.String())
		}
	}
}
