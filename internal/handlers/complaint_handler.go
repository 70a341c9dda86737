package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"civicdesk/internal/models"
	"civicdesk/internal/services"
)

type ComplaintHandler struct {
	Service *services.ComplaintService
}

func (h *ComplaintHandler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	var req models.CreateComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	complaint, err := h.Service.CreateComplaint(r.Context(), ctxUserID(r), req)
	if err != nil {
		var validation models.ValidationError
		switch {
		case errors.As(err, &validation):
			writeValidationErrors(w, validation)
		case errors.Is(err, models.ErrNotAuthenticated):
			http.Error(w, "Authentication required", http.StatusUnauthorized)
		case errors.Is(err, models.ErrAttachmentNotFound):
			http.Error(w, "Attachment not found", http.StatusNotFound)
		default:
			log.Printf("CreateComplaint error: %v", err)
			http.Error(w, "Failed to create complaint", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(complaint)
}

// GetComplaints is the administrator list: filtered, sorted, paginated.
func (h *ComplaintHandler) GetComplaints(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.ListComplaints(r.Context(), complaintQueryFromRequest(r, true))
	if err != nil {
		log.Printf("GetComplaints error: %v", err)
		http.Error(w, "Failed to get complaints", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(page)
}

// GetMyComplaints is the citizen view: the caller's own subset, no
// pagination.
func (h *ComplaintHandler) GetMyComplaints(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.Service.UserComplaints(r.Context(), ctxUserID(r), complaintQueryFromRequest(r, false))
	if err != nil {
		log.Printf("GetMyComplaints error: %v", err)
		http.Error(w, "Failed to get complaints", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(complaints)
}

func (h *ComplaintHandler) GetComplaintByID(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Missing complaint ID", http.StatusBadRequest)
		return
	}

	complaint, err := h.Service.GetComplaintByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrComplaintNotFound) {
			http.Error(w, "Complaint not found", http.StatusNotFound)
			return
		}
		log.Printf("GetComplaintByID error: %v", err)
		http.Error(w, "Failed to get complaint", http.StatusInternalServerError)
		return
	}

	// Citizens only see their own complaints; a foreign id looks absent.
	if ctxRole(r) != models.RoleAdmin && complaint.UserID != ctxUserID(r) {
		http.Error(w, "Complaint not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(complaint)
}

func (h *ComplaintHandler) UpdateComplaintStatus(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Missing complaint ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	complaint, err := h.Service.UpdateComplaintStatus(r.Context(), id, req.Status)
	if err != nil {
		var validation models.ValidationError
		switch {
		case errors.As(err, &validation):
			writeValidationErrors(w, validation)
		case errors.Is(err, models.ErrComplaintNotFound):
			http.Error(w, "Complaint not found", http.StatusNotFound)
		case errors.Is(err, models.ErrInvalidStatusTransition):
			http.Error(w, "Status cannot move backwards", http.StatusConflict)
		default:
			log.Printf("UpdateComplaintStatus error: %v", err)
			http.Error(w, "Failed to update status", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(complaint)
}

// GetComplaintTypes feeds the filter dropdown: distinct types over the
// caller's scope.
func (h *ComplaintHandler) GetComplaintTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.DistinctTypes(r.Context(), ctxUserID(r), ctxRole(r) == models.RoleAdmin)
	if err != nil {
		log.Printf("GetComplaintTypes error: %v", err)
		http.Error(w, "Failed to get complaint types", http.StatusInternalServerError)
		return
	}
	if types == nil {
		types = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(types)
}

func (h *ComplaintHandler) ExportComplaintsCSV(w http.ResponseWriter, r *http.Request) {
	csv, err := h.Service.ExportCSV(r.Context(), complaintQueryFromRequest(r, false))
	if err != nil {
		log.Printf("ExportComplaintsCSV error: %v", err)
		http.Error(w, "Failed to export complaints", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("complaints-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write([]byte(csv))
}

func complaintQueryFromRequest(r *http.Request, paginated bool) services.ComplaintQuery {
	q := services.ComplaintQuery{
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
		Type:   r.URL.Query().Get("type"),
		Sort:   r.URL.Query().Get("sort"),
	}
	if q.Status == "" {
		q.Status = services.FilterAll
	}
	if q.Type == "" {
		q.Type = services.FilterAll
	}
	if q.Sort == "" {
		q.Sort = services.SortNewest
	}
	if paginated {
		q.Page = 1
		if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
			q.Page = page
		}
	}
	return q
}

func writeValidationErrors(w http.ResponseWriter, errs models.ValidationError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	json.NewEncoder(w).Encode(map[string]models.ValidationError{"errors": errs})
}
