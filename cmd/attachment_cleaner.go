package main

import (
	"context"
	"log"
	"time"

	"civicdesk/internal/services"
)

const (
	attachmentCleanerInterval = time.Hour
	attachmentCleanerTimeout  = 30 * time.Second
	attachmentDraftMaxAge     = 24 * time.Hour
)

// startAttachmentCleaner removes draft attachments never bound to a
// complaint, freeing their stored objects.
func startAttachmentCleaner(ctx context.Context, svc *services.AttachmentService, infoLog, errorLog *log.Logger) {
	if svc == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(attachmentCleanerInterval)
		defer ticker.Stop()

		run := func() {
			runCtx, cancel := context.WithTimeout(ctx, attachmentCleanerTimeout)
			defer cancel()

			removed, err := svc.CleanupExpiredDrafts(runCtx, time.Now().Add(-attachmentDraftMaxAge))
			if err != nil {
				if errorLog != nil {
					errorLog.Printf("attachment cleaner: failed to remove stale drafts: %v", err)
				}
				return
			}
			if removed > 0 && infoLog != nil {
				infoLog.Printf("attachment cleaner: removed %d stale drafts", removed)
			}
		}

		run()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				run()
			}
		}
	}()
}
