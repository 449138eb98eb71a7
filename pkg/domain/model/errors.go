package model

import "github.com/m-mizutani/goerr/v2"

// Error tags used to classify pipeline failures
var (
	ErrTagInvalidFilter = goerr.NewTag("invalid_filter")
	ErrTagConnection    = goerr.NewTag("connection")
	ErrTagQuery         = goerr.NewTag("query")
	ErrTagRender        = goerr.NewTag("render")
	ErrTagExport        = goerr.NewTag("export")
)

// Sentinel errors for domain operations
var (
	ErrStaleRun           = goerr.New("pipeline run superseded by a newer request")
	ErrSurfaceNotAttached = goerr.New("no drawing surface attached")
)
