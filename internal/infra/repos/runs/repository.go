package runs

import (
	"strings"

	"exportgen/internal/domain"
)

// Repository stores generation run history.
type Repository interface {
	Init() error
	Create(run *domain.Run) error
	Update(run *domain.Run) error
	Get(id string) (*domain.Run, error)
	List(limit int, status string) ([]*domain.Run, error)
}

// NewRepository picks the backend from the DSN: postgres URLs go to the
// postgres repository, anything else is treated as a sqlite file path.
func NewRepository(dsn string) Repository {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return NewPostgresRepository(dsn)
	}
	return NewSQLiteRepository(dsn)
}
