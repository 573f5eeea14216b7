package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "reminderbot"

// StartSubmissionSpan starts a span for the post-acknowledgment work
// of a modal submission.
func StartSubmissionSpan(ctx context.Context, callbackID, userID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "submission",
		trace.WithAttributes(
			attribute.String("view.callback_id", callbackID),
			attribute.String("slack.user_id", userID),
		),
	)
}

// StartOptionQuerySpan starts a span for serving a block_suggestion
// request.
func StartOptionQuerySpan(ctx context.Context, userID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "option_query",
		trace.WithAttributes(
			attribute.String("slack.user_id", userID),
		),
	)
}
