package http

import (
	"net/http"

	"github.com/MKhiriev/go-todo-keeper/internal/app"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/utils"
	"github.com/MKhiriev/go-todo-keeper/models"
)

func (h *Handler) sync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var syncRequest models.SyncRequest
	if err := utils.ReadJSON(w, r, &syncRequest); err != nil {
		log.Err(err).Str("func", "*Handler.sync").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	userID, _ := utils.GetUserIDFromContext(ctx)
	response, err := h.services.TaskSyncService.Sync(ctx, userID, utils.GetDeviceIDFromContext(ctx), syncRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.sync").Msg("error computing sync delta")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
