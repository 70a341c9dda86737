package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUserNotFound            = errors.New("models: user not found")
	ErrDuplicateEmail          = errors.New("models: duplicate email")
	ErrInvalidCredentials      = errors.New("models: invalid credentials")
	ErrNotAuthenticated        = errors.New("models: not authenticated")
	ErrSessionNotFound         = errors.New("models: session not found")
	ErrComplaintNotFound       = errors.New("models: complaint not found")
	ErrAttachmentNotFound      = errors.New("models: attachment not found")
	ErrInvalidStatusTransition = errors.New("models: invalid status transition")
)

// ValidationError maps a field name to a human-readable message.
type ValidationError map[string]string

func (v ValidationError) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, v[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
