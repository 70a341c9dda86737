package services

import (
	"strings"
	"time"

	"civicdesk/internal/models"
)

var csvHeader = []string{
	"ID", "Type", "Location", "Description", "Status", "User", "Created At", "Updated At", "Urgent",
}

// BuildComplaintsCSV renders the export table. Free-text columns are
// double-quote-enclosed with internal quotes doubled; ID, status and
// timestamps stay bare, matching the format downstream consumers expect.
func BuildComplaintsCSV(list []models.Complaint) string {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))
	b.WriteByte('\n')

	for i, c := range list {
		urgent := "No"
		if c.IsUrgent {
			urgent = "Yes"
		}

		row := []string{
			c.ID,
			csvQuote(c.Type),
			csvQuote(c.Location),
			csvQuote(c.Description),
			c.Status,
			csvQuote(c.UserName),
			c.CreatedAt.UTC().Format(time.RFC3339),
			c.UpdatedAt.UTC().Format(time.RFC3339),
			urgent,
		}
		b.WriteString(strings.Join(row, ","))
		if i < len(list)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func csvQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
