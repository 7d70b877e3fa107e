package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// TracerName is the tracer name for dotnetproj operations
	TracerName = "github.com/willibrandon/dotnetproj"
)

// Common attribute keys
const (
	AttrSolutionPath   = attribute.Key("dotnet.solution.path")
	AttrProjectPath    = attribute.Key("dotnet.project.path")
	AttrProjectCount   = attribute.Key("dotnet.project.count")
	AttrPackageID      = attribute.Key("dotnet.package.id")
	AttrPackageVersion = attribute.Key("dotnet.package.version")
	AttrOperation      = attribute.Key("dotnet.operation")
	AttrDocumentCount  = attribute.Key("dotnet.document.count")
)

// StartSolutionParseSpan starts a span for reading a solution and its projects
func StartSolutionParseSpan(ctx context.Context, solutionPath string) (context.Context, trace.Span) {
	return startSpan(ctx, "solution.parse",
		AttrSolutionPath.String(solutionPath),
		AttrOperation.String("parse"),
	)
}

// StartProjectLoadSpan starts a span for loading one project file
func StartProjectLoadSpan(ctx context.Context, projectPath string) (context.Context, trace.Span) {
	return startSpan(ctx, "project.load",
		AttrProjectPath.String(projectPath),
		AttrOperation.String("load"),
	)
}

// StartMigrationSpan starts a span for a central package management migration
func StartMigrationSpan(ctx context.Context, solutionPath string, projectCount int) (context.Context, trace.Span) {
	return startSpan(ctx, "cpm.migrate",
		AttrSolutionPath.String(solutionPath),
		AttrProjectCount.Int(projectCount),
		AttrOperation.String("migrate"),
	)
}

// StartSaveSpan starts a span for writing the documents of a session
func StartSaveSpan(ctx context.Context, documentCount int) (context.Context, trace.Span) {
	return startSpan(ctx, "documents.save",
		AttrDocumentCount.Int(documentCount),
		AttrOperation.String("save"),
	)
}

// StartFormatSpan starts a span for formatting one document
func StartFormatSpan(ctx context.Context, path string) (context.Context, trace.Span) {
	return startSpan(ctx, "document.format",
		AttrProjectPath.String(path),
		AttrOperation.String("format"),
	)
}

// RecordVersionConflict records that a package was referenced at several versions
func RecordVersionConflict(ctx context.Context, packageID, chosen string, candidates []string) {
	SpanFromContext(ctx).AddEvent("version.conflict",
		trace.WithAttributes(
			AttrPackageID.String(packageID),
			AttrPackageVersion.String(chosen),
			attribute.StringSlice("dotnet.package.candidates", candidates),
		),
	)
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
