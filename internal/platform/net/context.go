// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const (
	keySubjectID ctxKey = "subject_id"
	keyUserID    ctxKey = "user_id"
	keyLocale    ctxKey = "locale"
)

// WithRequest annotates context with common request scoped ids
func WithRequest(ctx context.Context, reqID, subjectID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if subjectID != "" {
		ctx = context.WithValue(ctx, keySubjectID, subjectID)
	}
	return ctx
}

// WithUser annotates context with the authenticated user id
func WithUser(ctx context.Context, userID string) context.Context {
	if userID != "" {
		ctx = context.WithValue(ctx, keyUserID, userID)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// SubjectID returns the subject id on the context if present
func SubjectID(ctx context.Context) string {
	if v, ok := ctx.Value(keySubjectID).(string); ok {
		return v
	}
	return ""
}

// UserID returns the user id on the context if present
func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(keyUserID).(string); ok {
		return v
	}
	return ""
}

// WithLocale annotates context with the resolved locale code
func WithLocale(ctx context.Context, code string) context.Context {
	if code != "" {
		ctx = context.WithValue(ctx, keyLocale, code)
	}
	return ctx
}

// LocaleCode returns the resolved locale code on the context if present
func LocaleCode(ctx context.Context) string {
	if v, ok := ctx.Value(keyLocale).(string); ok {
		return v
	}
	return ""
}
