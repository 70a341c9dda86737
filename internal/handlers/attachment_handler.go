package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"civicdesk/internal/models"
	"civicdesk/internal/services"
)

const maxAttachmentSize = 5 << 20 // 5 MiB per file

var allowedAttachmentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"video/mp4":  true,
}

type AttachmentHandler struct {
	Service *services.AttachmentService
}

// UploadAttachments accepts a multipart batch under the "files" key.
// Invalid files are skipped; only the most recent rejection message is
// reported back.
func (h *AttachmentHandler) UploadAttachments(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	userID := ctxUserID(r)
	attachments := []models.Attachment{}
	fileError := ""

	for _, fh := range r.MultipartForm.File["files"] {
		if msg := validateAttachmentFile(fh); msg != "" {
			fileError = msg
			continue
		}

		file, err := fh.Open()
		if err != nil {
			log.Printf("UploadAttachments open error: %v", err)
			http.Error(w, "Failed to read file", http.StatusInternalServerError)
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			log.Printf("UploadAttachments read error: %v", err)
			http.Error(w, "Failed to read file", http.StatusInternalServerError)
			return
		}

		attachment, err := h.Service.SaveDraft(r.Context(), userID, fh.Filename, fh.Header.Get("Content-Type"), data)
		if err != nil {
			log.Printf("UploadAttachments save error: %v", err)
			http.Error(w, "Failed to store file", http.StatusInternalServerError)
			return
		}
		attachments = append(attachments, attachment)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"attachments": attachments,
		"file_error":  fileError,
	})
}

func (h *AttachmentHandler) DeleteAttachment(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Missing attachment ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteDraft(r.Context(), ctxUserID(r), id); err != nil {
		if errors.Is(err, models.ErrAttachmentNotFound) {
			http.Error(w, "Attachment not found", http.StatusNotFound)
			return
		}
		log.Printf("DeleteAttachment error: %v", err)
		http.Error(w, "Failed to delete attachment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "attachment deleted"})
}

func validateAttachmentFile(fh *multipart.FileHeader) string {
	if !allowedAttachmentTypes[fh.Header.Get("Content-Type")] {
		return fmt.Sprintf("File type not allowed: %s. Allowed types: JPG, PNG, GIF, MP4", fh.Filename)
	}
	if fh.Size > maxAttachmentSize {
		return fmt.Sprintf("File too large: %.2fMB. Max size: 5MB", float64(fh.Size)/(1024*1024))
	}
	return ""
}
