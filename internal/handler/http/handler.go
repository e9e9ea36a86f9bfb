// Package http is the agent's inbound transport: a small listener the sync
// server pushes PUSH/DEL operations to. It is the agent-side stand-in for
// the platform messaging delivery path — delivery is at-most-once and there
// is no persisted queue.
package http

import (
	"github.com/husarprojects/healthsync/internal/logger"
	"github.com/husarprojects/healthsync/internal/service"
)

type Handler struct {
	push service.PushService

	logger *logger.Logger
}

func NewHandler(push service.PushService, logger *logger.Logger) *Handler {
	logger.Info().Msg("push listener handler created")
	return &Handler{
		push:   push,
		logger: logger,
	}
}
