package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"civicdesk/internal/models"
	"civicdesk/internal/services"
)

func fileHeader(name, contentType string, size int64) *multipart.FileHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Type", contentType)
	return &multipart.FileHeader{Filename: name, Header: h, Size: size}
}

func TestValidateAttachmentFileRejectsDisallowedType(t *testing.T) {
	msg := validateAttachmentFile(fileHeader("report.pdf", "application/pdf", 100))
	if msg != "File type not allowed: report.pdf. Allowed types: JPG, PNG, GIF, MP4" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestValidateAttachmentFileRejectsOversize(t *testing.T) {
	msg := validateAttachmentFile(fileHeader("clip.mp4", "video/mp4", 6<<20))
	if msg != "File too large: 6.00MB. Max size: 5MB" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestValidateAttachmentFileAcceptsAllowedTypes(t *testing.T) {
	for _, ct := range []string{"image/jpeg", "image/png", "image/gif", "video/mp4"} {
		if msg := validateAttachmentFile(fileHeader("f", ct, 1024)); msg != "" {
			t.Errorf("%s should be accepted, got %q", ct, msg)
		}
	}
}

func TestValidateAttachmentFileBoundary(t *testing.T) {
	if msg := validateAttachmentFile(fileHeader("f.png", "image/png", 5<<20)); msg != "" {
		t.Errorf("exactly 5MB should be accepted, got %q", msg)
	}
	if msg := validateAttachmentFile(fileHeader("f.png", "image/png", 5<<20+1)); msg == "" {
		t.Errorf("one byte over 5MB should be rejected")
	}
}

type memoryBlobStorage struct {
	uploads []string
}

func (m *memoryBlobStorage) Upload(file []byte, fileName, folder, contentType string) (string, error) {
	m.uploads = append(m.uploads, fileName)
	return "https://bucket.example.com/" + folder + "/" + fileName, nil
}

func (m *memoryBlobStorage) Delete(fileURL string) error { return nil }

type memoryAttachmentStore struct {
	rows []models.Attachment
}

func (m *memoryAttachmentStore) CreateAttachment(ctx context.Context, a models.Attachment) (models.Attachment, error) {
	m.rows = append(m.rows, a)
	return a, nil
}

func (m *memoryAttachmentStore) GetAttachmentByID(ctx context.Context, id string) (models.Attachment, error) {
	for _, a := range m.rows {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Attachment{}, models.ErrAttachmentNotFound
}

func (m *memoryAttachmentStore) GetDraftsByIDs(ctx context.Context, userID string, ids []string) ([]models.Attachment, error) {
	return nil, nil
}

func (m *memoryAttachmentStore) BindToComplaint(ctx context.Context, complaintID string, ids []string) error {
	return nil
}

func (m *memoryAttachmentStore) DeleteAttachment(ctx context.Context, id string) error { return nil }

func (m *memoryAttachmentStore) GetExpiredDrafts(ctx context.Context, before time.Time) ([]models.Attachment, error) {
	return nil, nil
}

func TestUploadAttachmentsKeepsLastRejectionOnly(t *testing.T) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	addFile := func(name, contentType, payload string) {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="files"; filename="`+name+`"`)
		h.Set("Content-Type", contentType)
		part, err := writer.CreatePart(h)
		if err != nil {
			t.Fatalf("CreatePart failed: %v", err)
		}
		if _, err := part.Write([]byte(payload)); err != nil {
			t.Fatalf("writing part failed: %v", err)
		}
	}

	addFile("report.pdf", "application/pdf", "not allowed")
	addFile("photo.jpg", "image/jpeg", "jpeg bytes")
	addFile("huge.png", "image/png", strings.Repeat("x", 5<<20+1))

	if err := writer.Close(); err != nil {
		t.Fatalf("closing writer failed: %v", err)
	}

	store := &memoryAttachmentStore{}
	handler := &AttachmentHandler{Service: &services.AttachmentService{
		AttachmentRepo: store,
		Storage:        &memoryBlobStorage{},
	}}

	req := httptest.NewRequest("POST", "/complaints/files", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req = req.WithContext(context.WithValue(req.Context(), "user_id", "u1"))
	rec := httptest.NewRecorder()

	handler.UploadAttachments(rec, req)

	if rec.Code != 200 {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Attachments []models.Attachment `json:"attachments"`
		FileError   string              `json:"file_error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response failed: %v", err)
	}

	if len(resp.Attachments) != 1 || resp.Attachments[0].Name != "photo.jpg" {
		t.Fatalf("expected only the valid file to be stored, got %#v", resp.Attachments)
	}
	if !strings.HasPrefix(resp.FileError, "File too large:") {
		t.Fatalf("expected the last rejection to win, got %q", resp.FileError)
	}
	if len(store.rows) != 1 {
		t.Fatalf("expected one stored row, got %d", len(store.rows))
	}
}
