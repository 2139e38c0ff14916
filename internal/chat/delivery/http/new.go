package http

import (
	"edupal/internal/chat"
	"edupal/pkg/log"
)

type handler struct {
	l  log.Logger
	uc chat.UseCase
}

// New creates the HTTP handler for the chatbot domain.
func New(l log.Logger, uc chat.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
