// Package services – ChatService
//
// This file implements the ChatService, a thin validation layer in front of
// the external retrieval-augmented chat capability. Prompts are trimmed and
// bounded by rune length before the proxy call; the answering itself
// happens entirely on the remote side, scoped to the caller's documents.
package services

import (
	"context"
	"strings"
	"unicode/utf8"
)

// RagClient is the subset of the chat capability used by ChatService.
type RagClient interface {
	Ask(ctx context.Context, userID, message string) (string, error)
}

// ChatService validates prompts and proxies them to the chat capability.
type ChatService struct {
	// Client talks to the external chat capability.
	Client RagClient

	// MaxPromptLen caps prompts by rune length.
	MaxPromptLen int
}

// NewChatService constructs a ChatService with a sane default prompt cap.
func NewChatService(c RagClient) *ChatService {
	return &ChatService{Client: c, MaxPromptLen: 4000}
}

// Ask validates the message and forwards it. Returns ErrEmptyPrompt for a
// blank message and ErrTooLong when it exceeds the configured cap.
func (s *ChatService) Ask(ctx context.Context, userID, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyPrompt
	}
	if s.MaxPromptLen > 0 && utf8.RuneCountInString(message) > s.MaxPromptLen {
		return "", ErrTooLong
	}
	return s.Client.Ask(ctx, userID, message)
}
