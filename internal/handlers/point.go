package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"ecoleta/internal/services"
	"ecoleta/internal/storage"
	"ecoleta/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// multipartMemory is how much of a form is buffered in memory before
// spilling to temp files.
const multipartMemory = 1 << 20

type PointHandler struct {
	service        *services.PointService
	logr           *zap.Logger
	maxUploadBytes int64
}

func NewPointHandler(svc *services.PointService, logr *zap.Logger, maxUploadBytes int64) *PointHandler {
	return &PointHandler{service: svc, logr: logr, maxUploadBytes: maxUploadBytes}
}

// ListPoints handles GET /points?city=&state=&items=1,2
func (h *PointHandler) ListPoints(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items := strings.Join(utils.ParseQueryList(q, "items"), ",")

	points, err := h.service.ListPoints(r.Context(), q.Get("city"), q.Get("state"), items)
	if err != nil {
		writeError(w, h.logr, "failed to list points", err)
		return
	}

	writeJSON(w, http.StatusOK, points)
}

// GetPoint handles GET /points/{id}
func (h *PointHandler) GetPoint(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logr.Debug("non-numeric point id", zap.String("id", idStr))
		writeError(w, h.logr, "failed to get point", services.ErrPointNotFound)
		return
	}

	detail, err := h.service.GetPoint(r.Context(), id)
	if err != nil {
		writeError(w, h.logr, "failed to get point", err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// CreatePoint handles POST /points as multipart/form-data with an image file.
func (h *PointHandler) CreatePoint(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartMemory)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, messageResponse{Message: "request body too large"})
			return
		}
		h.logr.Warn("invalid multipart form", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "request must be multipart/form-data"})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	form := r.MultipartForm.Value
	in := services.CreatePointInput{
		Name:      r.FormValue("name"),
		Email:     r.FormValue("email"),
		Whatsapp:  r.FormValue("whatsapp"),
		Latitude:  r.FormValue("latitude"),
		Longitude: r.FormValue("longitude"),
		City:      r.FormValue("city"),
		State:     r.FormValue("state"),
		Items:     strings.Join(utils.ParseQueryList(form, "items"), ","),
	}

	var img *storage.Upload
	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		img = &storage.Upload{Name: header.Filename, Size: header.Size, Body: file}
	case errors.Is(err, http.ErrMissingFile):
		// RegisterPoint rejects a nil image
	default:
		h.logr.Warn("failed to read image", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid image upload", Field: "image"})
		return
	}

	point, err := h.service.RegisterPoint(r.Context(), in, img)
	if err != nil {
		writeError(w, h.logr, "failed to create point", err)
		return
	}

	writeJSON(w, http.StatusOK, point)
}
