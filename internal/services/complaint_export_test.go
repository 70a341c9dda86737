package services

import (
	"strings"
	"testing"
	"time"

	"civicdesk/internal/models"
)

func TestBuildComplaintsCSVHeader(t *testing.T) {
	out := BuildComplaintsCSV(nil)

	want := "ID,Type,Location,Description,Status,User,Created At,Updated At,Urgent\n"
	if out != want {
		t.Fatalf("unexpected header: %q", out)
	}
}

func TestBuildComplaintsCSVQuotesFreeTextAndDoublesQuotes(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	list := []models.Complaint{
		{
			ID:          "c1",
			Type:        "Road Issue",
			Location:    `Main St, near "Joe's"`,
			Description: "Pothole, deep",
			Status:      models.StatusPending,
			UserName:    "Alice Brown",
			CreatedAt:   ts,
			UpdatedAt:   ts,
		},
	}

	out := BuildComplaintsCSV(list)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}

	want := `c1,"Road Issue","Main St, near ""Joe's""","Pothole, deep",pending,"Alice Brown",2024-03-01T10:30:00Z,2024-03-01T10:30:00Z,No`
	if lines[1] != want {
		t.Fatalf("unexpected row:\n got %s\nwant %s", lines[1], want)
	}
}

func TestBuildComplaintsCSVUrgentFlag(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	list := []models.Complaint{
		{ID: "c1", Type: "Public Safety", Status: models.StatusPending, IsUrgent: true, CreatedAt: ts, UpdatedAt: ts},
		{ID: "c2", Type: "Noise Complaint", Status: models.StatusResolved, CreatedAt: ts, UpdatedAt: ts},
	}

	out := BuildComplaintsCSV(list)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus two rows, got %d lines", len(lines))
	}
	if !strings.HasSuffix(lines[1], ",Yes") {
		t.Errorf("urgent row should end with Yes: %s", lines[1])
	}
	if !strings.HasSuffix(lines[2], ",No") {
		t.Errorf("non-urgent row should end with No: %s", lines[2])
	}
}

func TestBuildComplaintsCSVTimestampsAreUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	ts := time.Date(2024, 3, 1, 15, 0, 0, 0, loc)
	list := []models.Complaint{
		{ID: "c1", Type: "Other", Status: models.StatusPending, CreatedAt: ts, UpdatedAt: ts},
	}

	out := BuildComplaintsCSV(list)
	if !strings.Contains(out, "2024-03-01T10:00:00Z") {
		t.Fatalf("timestamps should be normalized to UTC: %s", out)
	}
}
