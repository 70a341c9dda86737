package services

import (
	"testing"
	"time"

	"civicdesk/internal/models"
)

func queryFixture() []models.Complaint {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return []models.Complaint{
		{ID: "c1", UserName: "Alice Brown", Type: "Road Issue", Location: "Main St", Description: "Large pothole near the crossing", Status: models.StatusPending, CreatedAt: base},
		{ID: "c2", UserName: "Bob Green", Type: "Public Safety", Location: "5th Ave", Description: "Broken streetlight at the corner", Status: models.StatusInProgress, IsUrgent: true, CreatedAt: base.Add(time.Hour)},
		{ID: "c3", UserName: "Carl White", Type: "Garbage", Location: "Oak Rd", Description: "Missed pickup two weeks in a row", Status: models.StatusResolved, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "c4", UserName: "Dana Black", Type: "Public Safety", Location: "Main St", Description: "Open manhole without barriers", Status: models.StatusPending, IsUrgent: true, CreatedAt: base.Add(3 * time.Hour)},
	}
}

func TestFilterComplaintsAllSentinelsPassEverything(t *testing.T) {
	list := queryFixture()

	got := FilterComplaints(list, ComplaintQuery{Status: FilterAll, Type: FilterAll}, true)
	if len(got) != len(list) {
		t.Fatalf("expected all %d complaints, got %d", len(list), len(got))
	}
}

func TestFilterComplaintsByStatusAndType(t *testing.T) {
	list := queryFixture()

	got := FilterComplaints(list, ComplaintQuery{Status: models.StatusPending, Type: "Public Safety"}, true)
	if len(got) != 1 || got[0].ID != "c4" {
		t.Fatalf("expected only c4, got %#v", got)
	}
}

func TestFilterComplaintsSearchIsCaseInsensitive(t *testing.T) {
	list := queryFixture()

	got := FilterComplaints(list, ComplaintQuery{Search: "POTHOLE", Status: FilterAll, Type: FilterAll}, false)
	if len(got) != 1 || got[0].ID != "c1" {
		t.Fatalf("expected pothole complaint, got %#v", got)
	}
}

func TestFilterComplaintsSearchMatchesLocationTypeAndID(t *testing.T) {
	list := queryFixture()

	if got := FilterComplaints(list, ComplaintQuery{Search: "oak", Status: FilterAll, Type: FilterAll}, false); len(got) != 1 || got[0].ID != "c3" {
		t.Fatalf("location search failed: %#v", got)
	}
	if got := FilterComplaints(list, ComplaintQuery{Search: "garbage", Status: FilterAll, Type: FilterAll}, false); len(got) != 1 || got[0].ID != "c3" {
		t.Fatalf("type search failed: %#v", got)
	}
	if got := FilterComplaints(list, ComplaintQuery{Search: "c2", Status: FilterAll, Type: FilterAll}, false); len(got) != 1 || got[0].ID != "c2" {
		t.Fatalf("id search failed: %#v", got)
	}
}

func TestFilterComplaintsUserNameSearchOnlyForAdmins(t *testing.T) {
	list := queryFixture()

	if got := FilterComplaints(list, ComplaintQuery{Search: "alice", Status: FilterAll, Type: FilterAll}, false); len(got) != 0 {
		t.Fatalf("user name should not match on the citizen view, got %#v", got)
	}
	if got := FilterComplaints(list, ComplaintQuery{Search: "alice", Status: FilterAll, Type: FilterAll}, true); len(got) != 1 || got[0].ID != "c1" {
		t.Fatalf("user name should match on the admin view, got %#v", got)
	}
}

func TestSortComplaintsNewestAndOldest(t *testing.T) {
	list := queryFixture()

	newest := SortComplaints(list, SortNewest)
	if newest[0].ID != "c4" || newest[len(newest)-1].ID != "c1" {
		t.Fatalf("unexpected newest order: %v %v", newest[0].ID, newest[len(newest)-1].ID)
	}

	oldest := SortComplaints(list, SortOldest)
	if oldest[0].ID != "c1" || oldest[len(oldest)-1].ID != "c4" {
		t.Fatalf("unexpected oldest order: %v %v", oldest[0].ID, oldest[len(oldest)-1].ID)
	}
}

func TestSortComplaintsUrgentIsStable(t *testing.T) {
	list := queryFixture()

	got := SortComplaints(list, SortUrgent)
	wantOrder := []string{"c2", "c4", "c1", "c3"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("urgent sort position %d: want %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestSortComplaintsDoesNotMutateInput(t *testing.T) {
	list := queryFixture()

	_ = SortComplaints(list, SortNewest)
	if list[0].ID != "c1" {
		t.Fatalf("input slice was reordered, first id is %s", list[0].ID)
	}
}

func TestPaginateComplaintsClampsPage(t *testing.T) {
	list := make([]models.Complaint, 25)
	for i := range list {
		list[i].ID = string(rune('a' + i))
	}

	items, page, totalPages := PaginateComplaints(list, 99)
	if page != 3 || totalPages != 3 {
		t.Fatalf("expected clamp to last page 3/3, got %d/%d", page, totalPages)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 items on the last page, got %d", len(items))
	}

	items, page, _ = PaginateComplaints(list, 0)
	if page != 1 || len(items) != ComplaintsPerPage {
		t.Fatalf("expected clamp to first full page, got page=%d len=%d", page, len(items))
	}
}

func TestPaginateComplaintsEmptyList(t *testing.T) {
	items, page, totalPages := PaginateComplaints(nil, 5)
	if len(items) != 0 || page != 1 || totalPages != 0 {
		t.Fatalf("unexpected empty pagination: len=%d page=%d total=%d", len(items), page, totalPages)
	}
}

func TestDistinctComplaintTypesKeepsFirstSeenOrder(t *testing.T) {
	list := queryFixture()

	got := DistinctComplaintTypes(list)
	want := []string{"Road Issue", "Public Safety", "Garbage"}
	if len(got) != len(want) {
		t.Fatalf("expected %d distinct types, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: want %q, got %q", i, want[i], got[i])
		}
	}
}
