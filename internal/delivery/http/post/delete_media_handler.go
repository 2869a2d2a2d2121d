package post_http

import (
	"net/http"

	"inkpost-service/internal/custom_errors"
	"inkpost-service/internal/delivery/http/httpjson"
	"inkpost-service/internal/delivery/http/middleware"
)

type DeleteMediaHandler struct {
	storage MediaStorage
}

func NewDeleteMediaHandler(storage MediaStorage) *DeleteMediaHandler {
	return &DeleteMediaHandler{storage: storage}
}

// DeleteMedia removes a previously uploaded object. The object is addressed by
// the file_url the upload endpoint returned.
func (h *DeleteMediaHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		httpjson.WriteError(w, custom_errors.ErrUnauthenticated)
		return
	}

	fileURL := r.URL.Query().Get("file_url")
	if fileURL == "" {
		httpjson.WriteError(w, custom_errors.ErrInvalidInput)
		return
	}

	if err := h.storage.Delete(r.Context(), fileURL); err != nil {
		httpjson.WriteError(w, err)
		return
	}

	httpjson.WriteJSON(w, http.StatusOK, map[string]string{"detail": "Media deleted"})
}
