// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-todo-keeper/internal/app"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/utils"
	"github.com/MKhiriev/go-todo-keeper/models"
)

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.CreateTaskRequest
	if err := utils.ReadJSON(w, r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.createTask").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	userID, _ := utils.GetUserIDFromContext(ctx)
	created, err := h.services.TaskSyncService.CreateTask(ctx, userID, utils.GetDeviceIDFromContext(ctx), req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createTask").Str("client_ref", req.ClientRef).Msg("error creating task")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.UpdateTaskRequest
	if err := utils.ReadJSON(w, r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.updateTask").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	// the path decides which task is written
	req.Task.ID = chi.URLParam(r, "id")

	userID, _ := utils.GetUserIDFromContext(ctx)
	updated, err := h.services.TaskSyncService.UpdateTask(ctx, userID, utils.GetDeviceIDFromContext(ctx), req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateTask").Str("task_id", req.Task.ID).Msg("error updating task")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id := chi.URLParam(r, "id")
	userID, _ := utils.GetUserIDFromContext(ctx)

	if err := h.services.TaskSyncService.DeleteTask(ctx, userID, utils.GetDeviceIDFromContext(ctx), id); err != nil {
		log.Err(err).Str("func", "*Handler.deleteTask").Str("task_id", id).Msg("error deleting task")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
