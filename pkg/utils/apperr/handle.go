package apperr

import (
	"context"
	"errors"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/headcount/pkg/domain/model"
)

// Handle logs an application error. User-correctable errors are logged as warnings.
func Handle(ctx context.Context, err error) {
	logger := ctxlog.From(ctx)
	if goerr.HasTag(err, model.ErrTagInvalidFilter) {
		logger.Warn("invalid user input", "error", err)
		return
	}
	logger.Error("application error", "error", err)
}

// Message converts an error into the text shown to the user
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case goerr.HasTag(err, model.ErrTagInvalidFilter):
		return "Invalid filter: " + rootMessage(err) + ". Please check your filter settings and try again."
	case goerr.HasTag(err, model.ErrTagConnection):
		return "Cannot reach the database. Please retry later."
	case goerr.HasTag(err, model.ErrTagQuery):
		return "Failed to load headcount data: " + rootMessage(err)
	case goerr.HasTag(err, model.ErrTagRender):
		return "Failed to draw the chart: " + rootMessage(err)
	case goerr.HasTag(err, model.ErrTagExport):
		return "Failed to export data: " + rootMessage(err)
	default:
		return "Unexpected error: " + rootMessage(err)
	}
}

// rootMessage returns the message of the innermost goerr error, which is the most specific one
func rootMessage(err error) string {
	msg := err.Error()
	for e := err; e != nil; e = errors.Unwrap(e) {
		if _, ok := e.(*goerr.Error); ok {
			msg = e.Error()
		}
	}
	return msg
}
