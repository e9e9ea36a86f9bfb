package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/husarprojects/healthsync/internal/service"
	"github.com/husarprojects/healthsync/models"
)

// receivePush accepts one remote operation from the sync server. The body is
// {op: "PUSH"|"DEL", data: "<json-string>"}. Accepted operations return 202
// regardless of downstream insert/delete outcome: there is no redelivery, so
// failures are handled internally (alert or log), never bounced back.
func (h *Handler) receivePush(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var op models.RemoteOp
	if err := json.NewDecoder(r.Body).Decode(&op); err != nil {
		h.logger.Err(err).Msg("invalid push message body")
		http.Error(w, "invalid push message body", http.StatusBadRequest)
		return
	}

	if err := h.push.Apply(ctx, op); err != nil {
		if errors.Is(err, service.ErrBadPayload) {
			http.Error(w, "malformed push payload", http.StatusBadRequest)
			return
		}
		// Insert failures already raised a local alert; the server treats
		// the delivery as done either way.
		h.logger.Err(err).Str("op", op.Op).Msg("push operation failed")
	}

	w.WriteHeader(http.StatusAccepted)
}
