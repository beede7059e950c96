package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/orionte/placement-api/internal/infra/http/middleware"
	"github.com/orionte/placement-api/internal/usecase"
)

const (
	// maxDocumentSize caps regular document uploads at 10MB.
	maxDocumentSize = 10 * 1024 * 1024
	// maxVideoSize caps video CV uploads.
	maxVideoSize = 100 * 1024 * 1024
)

type DocumentHandler struct {
	Documents *usecase.DocumentUseCase
}

func NewDocumentHandler(documents *usecase.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{Documents: documents}
}

// Upload accepts a multipart document upload: leadId, type and a "file" part.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentSize)
	if err := r.ParseMultipartForm(maxDocumentSize); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "file must not exceed 10MB"})
		return
	}

	leadID, err := strconv.ParseInt(r.FormValue("leadId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid lead id"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "file is required"})
		return
	}
	defer file.Close()

	doc, err := h.Documents.Upload(r.Context(), actor, usecase.UploadDocumentInput{
		LeadID:   leadID,
		Type:     r.FormValue("type"),
		Filename: header.Filename,
		File:     file,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordDocumentUpload("document")

	writeJSON(w, http.StatusCreated, doc)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid document id"})
		return
	}

	if err := h.Documents.Delete(r.Context(), actor, id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "document deleted"})
}

// UploadVideoCV stores a lead's video CV and completes the Video CV stage
// when present. Accepts the file under "file" or "proof".
func (h *DocumentHandler) UploadVideoCV(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	leadID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid lead id"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxVideoSize)
	if err := r.ParseMultipartForm(maxVideoSize); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "video file too large"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		file, header, err = r.FormFile("proof")
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "video file is required"})
		return
	}
	defer file.Close()

	doc, stageCompleted, err := h.Documents.UploadVideoCV(r.Context(), actor, leadID, header.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordDocumentUpload("videocv")

	writeJSON(w, http.StatusCreated, map[string]any{
		"document":       doc,
		"stageCompleted": stageCompleted,
	})
}
