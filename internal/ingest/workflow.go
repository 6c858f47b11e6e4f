// Package ingest drives the sequential multi-file extraction workflow: each
// selected file is submitted to the extraction capability, its response is
// classified into a document status, successful extractions are persisted
// for authenticated owners, and a per-file outcome is accumulated for
// progressive display.
//
// The workflow is strictly sequential. One file's round trip (submission,
// classification, optional persistence) completes before the next begins,
// and a minimum delay is enforced between submissions after the first so a
// burst of uploads cannot exhaust the capability's rate limit on its own.
// A failing item never aborts the batch: it is recorded as a failed outcome
// and the workflow advances to the next file.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/documind/go-documind-backend/internal/domain"
)

// ErrRateLimited marks an item failure caused by the extraction
// capability's rate limit. It is distinguished from generic failure so the
// user can be told to wait instead of retrying immediately.
var ErrRateLimited = errors.New("extraction rate limit exceeded")

// File is one user-selected upload within a batch.
type File struct {
	Name    string
	Content []byte
	// TypeHint optionally forces the extraction schema ("invoice" or
	// "contract"); empty means the capability auto-classifies.
	TypeHint string
}

// ItemState is the per-item position in the workflow state machine.
type ItemState string

const (
	StateSubmitting  ItemState = "submitting"
	StateClassifying ItemState = "classifying"
	StatePersisting  ItemState = "persisting"
	StateRecorded    ItemState = "recorded"
	StateFailed      ItemState = "failed"
)

// Outcome is the final per-file result appended to the batch's ordered
// outcome list. Exactly one of Result/Error is meaningful: Result carries
// the extraction payload on success, Error the user-visible message on
// failure.
type Outcome struct {
	Filename    string                   `json:"filename"`
	State       ItemState                `json:"state"`
	Status      domain.DocumentStatus    `json:"status,omitempty"`
	Result      *domain.ExtractionResult `json:"result,omitempty"`
	DocumentID  string                   `json:"document_id,omitempty"`
	Error       string                   `json:"error,omitempty"`
	RateLimited bool                     `json:"rate_limited,omitempty"`
}

// Progress describes the workflow's current position while a batch runs.
type Progress struct {
	Index    int       // zero-based index of the file being processed
	Total    int       // number of files in the batch
	Filename string    // name of the file being processed
	State    ItemState // current per-item state
}

// Extractor submits one file to the external extraction capability.
// Implementations must return an error wrapping ErrRateLimited when the
// capability reports rate-limit exhaustion.
type Extractor interface {
	Extract(ctx context.Context, f File) (*domain.ExtractionResult, error)
}

// Store persists one classified document. The implementation assigns the
// record's identity and creation time on insert.
type Store interface {
	Insert(ctx context.Context, doc *domain.Document) error
}

// Workflow runs extraction batches. A single Workflow value is reusable
// across batches; each Run call processes one batch to completion.
type Workflow struct {
	Extractor Extractor
	Store     Store

	// Limiter paces submissions. With rate.Every(delay) and burst 1, the
	// first file submits immediately and every later file waits out the
	// configured inter-item delay. A nil limiter disables throttling.
	Limiter *rate.Limiter

	// OnProgress, when set, is invoked at every per-item state transition.
	OnProgress func(Progress)
}

// New constructs a Workflow that spaces submissions at least delay apart.
func New(ex Extractor, st Store, delay time.Duration) *Workflow {
	var lim *rate.Limiter
	if delay > 0 {
		lim = rate.NewLimiter(rate.Every(delay), 1)
	}
	return &Workflow{Extractor: ex, Store: st, Limiter: lim}
}

// Run processes files in selection order and returns one outcome per file,
// in the same order. userID identifies the owner; an empty userID is a
// guest submission, which is extracted and classified but never persisted.
//
// Partial-failure semantics: every file produces an outcome and the batch
// always runs over all files, even when individual items fail. Only a
// cancelled context cuts the remaining items short, and each of those still
// yields a failed outcome.
func (w *Workflow) Run(ctx context.Context, userID string, files []File) []Outcome {
	outcomes := make([]Outcome, 0, len(files))
	for i, f := range files {
		outcomes = append(outcomes, w.runOne(ctx, userID, i, len(files), f))
	}
	return outcomes
}

// runOne advances a single file through the state machine.
func (w *Workflow) runOne(ctx context.Context, userID string, idx, total int, f File) Outcome {
	out := Outcome{Filename: f.Name}

	w.progress(idx, total, f.Name, StateSubmitting)
	if w.Limiter != nil {
		if err := w.Limiter.Wait(ctx); err != nil {
			return w.failed(out, err)
		}
	}
	res, err := w.Extractor.Extract(ctx, f)
	if err != nil {
		return w.failed(out, err)
	}

	w.progress(idx, total, f.Name, StateClassifying)
	status := classify(res)
	out.Status = status
	out.Result = res

	if userID != "" {
		w.progress(idx, total, f.Name, StatePersisting)
		doc := &domain.Document{
			UserID:      userID,
			Filename:    f.Name,
			VendorName:  res.VendorName,
			TotalAmount: res.TotalAmount,
			Status:      status,
			Extracted:   *res,
		}
		if err := w.Store.Insert(ctx, doc); err != nil {
			return w.failed(out, fmt.Errorf("saving extraction: %w", err))
		}
		out.DocumentID = doc.ID
	}

	out.State = StateRecorded
	w.progress(idx, total, f.Name, StateRecorded)
	return out
}

// failed finalizes an item as a failed outcome without touching the batch.
func (w *Workflow) failed(out Outcome, err error) Outcome {
	out.State = StateFailed
	out.Error = err.Error()
	out.RateLimited = errors.Is(err, ErrRateLimited)
	if out.RateLimited {
		out.Error = "rate limit reached, wait a moment before retrying"
	}
	return out
}

func (w *Workflow) progress(idx, total int, name string, st ItemState) {
	if w.OnProgress != nil {
		w.OnProgress(Progress{Index: idx, Total: total, Filename: name, State: st})
	}
}

// classify derives the ingestion status from an extraction result.
// Invoices follow the validation log; contracts always record as Success
// because their risk level is surfaced separately, not folded into status.
func classify(res *domain.ExtractionResult) domain.DocumentStatus {
	if res.DocumentType == domain.TypeContract {
		return domain.StatusSuccess
	}
	return domain.ClassifyValidationLog(res.ValidationLog)
}
