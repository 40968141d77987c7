package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/sengkeat-dex/Tokenize/models"
)

// ComponentReader is the read side of the components table. The database
// repository, the in-memory catalog and the redis cache all satisfy it.
type ComponentReader interface {
	GetAllComponents(ctx context.Context) ([]models.Component, error)
	GetComponentsByType(ctx context.Context, mainType string) ([]models.Component, error)
	GetComponentsBySubType(ctx context.Context, mainType, subType string) ([]models.Component, error)
}

type ComponentRepository interface {
	ComponentReader
	EnsureSchema(ctx context.Context) error
	InsertComponent(ctx context.Context, component models.NewComponent) (int64, error)
	InsertComponents(ctx context.Context, components []models.NewComponent) ([]int64, error)
	WithTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	InsertComponentWithTx(ctx context.Context, tx *sqlx.Tx, component models.NewComponent) (int64, error)
}
