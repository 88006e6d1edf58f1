package handlers

import (
	"net/http"

	"ecoleta/internal/services"

	"go.uber.org/zap"
)

type ItemHandler struct {
	service *services.ItemService
	logr    *zap.Logger
}

func NewItemHandler(svc *services.ItemService, logr *zap.Logger) *ItemHandler {
	return &ItemHandler{service: svc, logr: logr}
}

// ListItems handles GET /items
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItems(r.Context())
	if err != nil {
		writeError(w, h.logr, "failed to list items", err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}
