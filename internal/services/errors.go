// Package services defines the business logic for accounts, document
// ingestion, dashboard analytics, chat, and report generation. This file
// centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler/controller layer.
package services

import "errors"

// Account-related errors.
var (
	// ErrEmailTaken is returned when a signup email already belongs to an
	// existing account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on login when no account matches the
	// email or the password does not verify. Callers must not distinguish
	// between the two cases.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken is returned when a session token is missing, malformed,
	// expired, or signed with the wrong key.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Ingestion-related errors.
var (
	// ErrEmptyBatch is returned when an extraction request carries no files.
	ErrEmptyBatch = errors.New("no files provided")

	// ErrBatchTooLarge is returned when an extraction request carries more
	// files than the configured per-batch maximum.
	ErrBatchTooLarge = errors.New("too many files in one batch")

	// ErrExtractRateLimited is returned when the extraction capability
	// reports rate-limit exhaustion.
	ErrExtractRateLimited = errors.New("extraction rate limit reached")

	// ErrExtractUnavailable is returned when the extraction capability
	// cannot be reached at all.
	ErrExtractUnavailable = errors.New("extraction service unavailable")
)

// Document and report errors.
var (
	// ErrDocumentNotFound indicates that the requested document does not
	// exist or is not accessible to the current user.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrWrongReportKind is returned when the requested report artifact does
	// not apply to the document's type (e.g. a spreadsheet for a contract).
	ErrWrongReportKind = errors.New("report kind does not match document type")
)

// Chat-related errors.
var (
	// ErrEmptyPrompt is returned when a chat request contains an empty
	// message.
	ErrEmptyPrompt = errors.New("prompt is empty")

	// ErrTooLong is returned when a chat request exceeds the maximum
	// configured length limit.
	ErrTooLong = errors.New("prompt too long")
)
