package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"

	"civicdesk/internal/models"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleUser))
	adminAuthMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleAdmin))

	mux := pat.New()

	// Users
	mux.Post("/user/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/user/log_out", standardMiddleware.ThenFunc(app.userHandler.LogOut))
	mux.Get("/user/me", authMiddleware.ThenFunc(app.userHandler.Me))
	mux.Get("/user", adminAuthMiddleware.ThenFunc(app.userHandler.GetUsers))
	mux.Get("/user/:id", adminAuthMiddleware.ThenFunc(app.userHandler.GetUserByID))

	// Complaints. Static paths are registered before /complaints/:id so
	// pat does not swallow them as an id.
	mux.Post("/complaints", authMiddleware.ThenFunc(app.complaintHandler.CreateComplaint))
	mux.Get("/complaints/my", authMiddleware.ThenFunc(app.complaintHandler.GetMyComplaints))
	mux.Get("/complaints/types", authMiddleware.ThenFunc(app.complaintHandler.GetComplaintTypes))
	mux.Get("/complaints/export", adminAuthMiddleware.ThenFunc(app.complaintHandler.ExportComplaintsCSV))
	mux.Post("/complaints/files", authMiddleware.ThenFunc(app.attachmentHandler.UploadAttachments))
	mux.Del("/complaints/files/:id", authMiddleware.ThenFunc(app.attachmentHandler.DeleteAttachment))
	mux.Get("/complaints", adminAuthMiddleware.ThenFunc(app.complaintHandler.GetComplaints))
	mux.Get("/complaints/:id", authMiddleware.ThenFunc(app.complaintHandler.GetComplaintByID))
	mux.Put("/complaints/:id/status", adminAuthMiddleware.ThenFunc(app.complaintHandler.UpdateComplaintStatus))

	// Notifications
	mux.Post("/notifications/token", authMiddleware.ThenFunc(app.notificationHandler.SaveDeviceToken))

	// Status updates over websocket
	mux.Get("/ws", http.HandlerFunc(app.WebSocketHandler))

	return standardMiddleware.Then(mux)
}
