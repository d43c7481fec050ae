// Package logging provides component-tagged zerolog loggers and context
// propagation for the identifiers revdiff cares about.
package logging

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const (
	postIDKey     contextKey = "post_id"
	revisionIDKey contextKey = "revision_id"
)

// Component creates a logger tagged with a component identifier under the
// "cmp" key, so log lines can be filtered per subsystem.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

// WithPostID adds the post identifier to the context.
func WithPostID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, postIDKey, id)
}

// WithRevisionID adds the selected revision identifier to the context.
func WithRevisionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, revisionIDKey, id)
}

// PostID retrieves the post identifier, or "" if not present.
func PostID(ctx context.Context) string {
	if id, ok := ctx.Value(postIDKey).(string); ok {
		return id
	}
	return ""
}

// RevisionID retrieves the revision identifier, or "" if not present.
func RevisionID(ctx context.Context) string {
	if id, ok := ctx.Value(revisionIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextHook copies post_id and revision_id from the event context onto
// the log event.
type ContextHook struct{}

// Run implements zerolog.Hook.
func (h ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if id := PostID(ctx); id != "" {
		e.Str("post_id", id)
	}
	if id := RevisionID(ctx); id != "" {
		e.Str("revision_id", id)
	}
}
