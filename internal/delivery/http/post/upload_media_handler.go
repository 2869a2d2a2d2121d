package post_http

import (
	"io"
	"net/http"

	"inkpost-service/internal/custom_errors"
	"inkpost-service/internal/delivery/http/httpjson"
	"inkpost-service/internal/delivery/http/middleware"
)

// maxUploadBytes caps a single media upload at 10 MiB.
const maxUploadBytes = 10 << 20

const mediaFolder = "media"

type UploadMediaHandler struct {
	storage MediaStorage
}

func NewUploadMediaHandler(storage MediaStorage) *UploadMediaHandler {
	return &UploadMediaHandler{storage: storage}
}

type UploadMediaResponse struct {
	FileURL     string `json:"file_url"`
	ContentType string `json:"content_type"`
	FileSize    int64  `json:"file_size"`
}

func (h *UploadMediaHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		httpjson.WriteError(w, custom_errors.ErrUnauthenticated)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpjson.WriteError(w, custom_errors.ErrInvalidInput)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httpjson.WriteError(w, custom_errors.ErrInvalidInput)
		return
	}
	defer file.Close()

	body, err := io.ReadAll(file)
	if err != nil {
		httpjson.WriteError(w, custom_errors.ErrUploadFailed)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}

	fileURL, err := h.storage.Upload(r.Context(), mediaFolder, header.Filename, contentType, body)
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	httpjson.WriteJSON(w, http.StatusOK, UploadMediaResponse{
		FileURL:     fileURL,
		ContentType: contentType,
		FileSize:    int64(len(body)),
	})
}
