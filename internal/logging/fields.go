// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldLine       = "line"

	// Configuration fields.
	FieldMinify         = "minify"
	FieldDetectLanguage = "detect_language"
	FieldOutputDir      = "output_dir"
	FieldJobs           = "jobs"

	// Build statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesRendered   = "files_rendered"
	FieldFilesWritten    = "files_written"
	FieldFilesErrored    = "files_errored"
	FieldElements        = "elements"
	FieldDuration        = "duration"

	// Watch fields.
	FieldEvent = "event"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
