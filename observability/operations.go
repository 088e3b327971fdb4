package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// TracerName is the tracer name for gocordova operations
	TracerName = "github.com/willibrandon/gocordova"
)

// Common attribute keys
const (
	AttrDocumentPath = attribute.Key("cordova.document.path")
	AttrOperation    = attribute.Key("cordova.operation")
	AttrPlatform     = attribute.Key("cordova.platform")
	AttrTarget       = attribute.Key("cordova.target")
	AttrQuery        = attribute.Key("cordova.query")
	AttrMatchCount   = attribute.Key("cordova.query.matches")
	AttrMigrated     = attribute.Key("cordova.legacy.migrated")
)

// StartDocumentLoadSpan starts a span covering the parse and legacy
// migration of a config.xml file.
func StartDocumentLoadSpan(ctx context.Context, path string) (context.Context, trace.Span) {
	return StartSpan(ctx, TracerName, "document.load",
		trace.WithAttributes(
			AttrDocumentPath.String(path),
			AttrOperation.String("load"),
		),
	)
}

// StartDocumentSaveSpan starts a span for serializing a document to disk.
func StartDocumentSaveSpan(ctx context.Context, path string) (context.Context, trace.Span) {
	return StartSpan(ctx, TracerName, "document.save",
		trace.WithAttributes(
			AttrDocumentPath.String(path),
			AttrOperation.String("save"),
		),
	)
}

// StartMutationSpan starts a span for one edit command. platform may be
// empty for edits at the widget level.
func StartMutationSpan(ctx context.Context, operation, target, platform string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		AttrOperation.String(operation),
		AttrTarget.String(target),
	}
	if platform != "" {
		attrs = append(attrs, AttrPlatform.String(platform))
	}
	return StartSpan(ctx, TracerName, "document.mutate", trace.WithAttributes(attrs...))
}

// StartQuerySpan starts a span for an XPath query.
func StartQuerySpan(ctx context.Context, expr string) (context.Context, trace.Span) {
	return StartSpan(ctx, TracerName, "document.query",
		trace.WithAttributes(
			AttrQuery.String(expr),
			AttrOperation.String("query"),
		),
	)
}

// RecordMigration records the number of rewritten legacy elements on the
// current span.
func RecordMigration(ctx context.Context, migrated int) {
	SetAttributes(ctx, AttrMigrated.Int(migrated))
	if migrated > 0 {
		AddEvent(ctx, "legacy.migrated", AttrMigrated.Int(migrated))
	}
}

// EndSpanWithError ends a span with an error status
func EndSpanWithError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
