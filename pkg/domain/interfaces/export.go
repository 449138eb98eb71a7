package interfaces

//go:generate moq -out mocks/export_mock.go -pkg mocks . Exporter Notifier

import (
	"context"

	"github.com/secmon-lab/headcount/pkg/domain/model"
)

// Exporter writes series to files and returns the written paths
type Exporter interface {
	Export(ctx context.Context, series []*model.Series) ([]string, error)
}

// Notifier shows messages to the user
type Notifier interface {
	Warn(ctx context.Context, message string)
	Error(ctx context.Context, message string)
}
