package apperr_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/headcount/pkg/domain/model"
	"github.com/secmon-lab/headcount/pkg/utils/apperr"
)

func TestMessage(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
		{
			name: "invalid filter uses innermost message",
			err: goerr.Wrap(
				goerr.New("start date is after end date", goerr.T(model.ErrTagInvalidFilter)),
				"cannot plan query"),
			expected: "Invalid filter: start date is after end date. Please check your filter settings and try again.",
		},
		{
			name:     "connection",
			err:      goerr.New("dial tcp: refused", goerr.T(model.ErrTagConnection)),
			expected: "Cannot reach the database. Please retry later.",
		},
		{
			name:     "query",
			err:      goerr.New("unknown column", goerr.T(model.ErrTagQuery)),
			expected: "Failed to load headcount data: unknown column",
		},
		{
			name:     "render",
			err:      goerr.Wrap(goerr.New("no font"), "failed to encode chart", goerr.T(model.ErrTagRender)),
			expected: "Failed to draw the chart: no font",
		},
		{
			name:     "export",
			err:      goerr.New("permission denied", goerr.T(model.ErrTagExport)),
			expected: "Failed to export data: permission denied",
		},
		{
			name:     "untagged",
			err:      goerr.New("boom"),
			expected: "Unexpected error: boom",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Equal(t, apperr.Message(tc.err), tc.expected)
		})
	}
}

func TestHandle(t *testing.T) {
	var buf bytes.Buffer
	ctx := ctxlog.With(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

	apperr.Handle(ctx, goerr.New("bad range", goerr.T(model.ErrTagInvalidFilter)))
	gt.S(t, buf.String()).Contains(`"level":"WARN"`)

	buf.Reset()
	apperr.Handle(ctx, goerr.New("gone", goerr.T(model.ErrTagQuery)))
	gt.S(t, buf.String()).Contains(`"level":"ERROR"`)
}
