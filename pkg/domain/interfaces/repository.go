package interfaces

//go:generate moq -out mocks/repository_mock.go -pkg mocks . Repository

import (
	"context"

	"github.com/secmon-lab/headcount/pkg/domain/model"
)

// Repository defines the interface for reading headcount data
type Repository interface {
	// Execute runs an aggregate query and returns its rows
	Execute(ctx context.Context, query *model.Query) ([]*model.EmploymentCountRecord, error)

	// ListDepartments returns every department ordered by ID
	ListDepartments(ctx context.Context) ([]*model.Department, error)

	// Close closes the repository connection
	Close() error
}
