package services

import (
	"sort"
	"strings"

	"civicdesk/internal/models"
)

// FilterAll is the sentinel that disables the status and type filters.
const FilterAll = "all"

const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortUrgent = "urgent"
)

// ComplaintsPerPage is the fixed administrator page size.
const ComplaintsPerPage = 10

type ComplaintQuery struct {
	Search string
	Status string
	Type   string
	Sort   string
	Page   int
}

type ComplaintPage struct {
	Complaints []models.Complaint `json:"complaints"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	TotalPages int                `json:"total_pages"`
}

// FilterComplaints applies search text and the status/type filters to a
// snapshot of the collection. The user name only participates in search on
// the administrator view.
func FilterComplaints(list []models.Complaint, q ComplaintQuery, searchUserName bool) []models.Complaint {
	result := make([]models.Complaint, 0, len(list))
	for _, c := range list {
		if !matchesSearch(c, q.Search, searchUserName) {
			continue
		}
		if q.Status != "" && q.Status != FilterAll && c.Status != q.Status {
			continue
		}
		if q.Type != "" && q.Type != FilterAll && c.Type != q.Type {
			continue
		}
		result = append(result, c)
	}
	return result
}

func matchesSearch(c models.Complaint, term string, searchUserName bool) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)

	if strings.Contains(strings.ToLower(c.Description), term) ||
		strings.Contains(strings.ToLower(c.Location), term) ||
		strings.Contains(strings.ToLower(c.Type), term) ||
		strings.Contains(strings.ToLower(c.ID), term) {
		return true
	}
	return searchUserName && strings.Contains(strings.ToLower(c.UserName), term)
}

// SortComplaints returns a sorted copy. The urgent order is stable: equal
// urgency keeps the incoming relative order. Unknown sort keys leave the
// order as is.
func SortComplaints(list []models.Complaint, sortBy string) []models.Complaint {
	result := make([]models.Complaint, len(list))
	copy(result, list)

	switch sortBy {
	case SortNewest:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	case SortOldest:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		})
	case SortUrgent:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].IsUrgent && !result[j].IsUrgent
		})
	}
	return result
}

// PaginateComplaints slices out one page of size ComplaintsPerPage. The page
// index is clamped into [1, ceil(n/size)], so a stale page from before a
// filter change still returns the last non-empty page.
func PaginateComplaints(list []models.Complaint, page int) ([]models.Complaint, int, int) {
	totalPages := (len(list) + ComplaintsPerPage - 1) / ComplaintsPerPage
	if totalPages == 0 {
		return []models.Complaint{}, 1, 0
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * ComplaintsPerPage
	end := start + ComplaintsPerPage
	if end > len(list) {
		end = len(list)
	}
	return list[start:end], page, totalPages
}

// DistinctComplaintTypes deduplicates the type field across the list in
// scope, keeping first-seen order for the filter dropdown.
func DistinctComplaintTypes(list []models.Complaint) []string {
	seen := make(map[string]struct{}, len(list))
	var types []string
	for _, c := range list {
		if _, ok := seen[c.Type]; ok {
			continue
		}
		seen[c.Type] = struct{}{}
		types = append(types, c.Type)
	}
	return types
}
