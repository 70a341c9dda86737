package handlers

import "net/http"

// getParam returns a path or query parameter value regardless of whether
// the router stores it with a leading colon or not.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}

	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}

	return r.URL.Query().Get(name)
}

// ctxUserID reads the authenticated user id the JWT middleware put into the
// request context; empty when the request is unauthenticated.
func ctxUserID(r *http.Request) string {
	id, _ := r.Context().Value("user_id").(string)
	return id
}

func ctxRole(r *http.Request) string {
	role, _ := r.Context().Value("role").(string)
	return role
}
