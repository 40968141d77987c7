package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sengkeat-dex/Tokenize/models"
)

const componentsSchema = `
	CREATE TABLE IF NOT EXISTS tokenization_components (
		id         SERIAL PRIMARY KEY,
		main_type  TEXT NOT NULL,
		sub_type   TEXT NOT NULL,
		components TEXT NOT NULL
	)`

const selectComponents = `SELECT id, main_type, sub_type, components FROM tokenization_components`

type componentRepository struct {
	db *sqlx.DB
}

func NewComponentRepository(db *sqlx.DB) ComponentRepository {
	return &componentRepository{db: db}
}

func (r *componentRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, componentsSchema); err != nil {
		return fmt.Errorf("create components table: %w", err)
	}
	return nil
}

func (r *componentRepository) InsertComponent(ctx context.Context, component models.NewComponent) (int64, error) {
	var id int64
	query := `INSERT INTO tokenization_components (main_type, sub_type, components) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query, component.MainType, component.SubType, component.Components).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert component: %w", err)
	}
	return id, nil
}

func (r *componentRepository) InsertComponentWithTx(ctx context.Context, tx *sqlx.Tx, component models.NewComponent) (int64, error) {
	var id int64
	query := `INSERT INTO tokenization_components (main_type, sub_type, components) VALUES ($1, $2, $3) RETURNING id`
	err := tx.QueryRowxContext(ctx, query, component.MainType, component.SubType, component.Components).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert component: %w", err)
	}
	return id, nil
}

// InsertComponents inserts all components or none of them.
func (r *componentRepository) InsertComponents(ctx context.Context, components []models.NewComponent) ([]int64, error) {
	ids := make([]int64, 0, len(components))
	err := r.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		for _, component := range components {
			id, err := r.InsertComponentWithTx(ctx, tx, component)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *componentRepository) GetAllComponents(ctx context.Context) ([]models.Component, error) {
	components := []models.Component{}
	query := selectComponents + ` ORDER BY id`
	if err := r.db.SelectContext(ctx, &components, query); err != nil {
		return nil, fmt.Errorf("select components: %w", err)
	}
	return components, nil
}

func (r *componentRepository) GetComponentsByType(ctx context.Context, mainType string) ([]models.Component, error) {
	components := []models.Component{}
	query := selectComponents + ` WHERE main_type = $1 ORDER BY id`
	if err := r.db.SelectContext(ctx, &components, query, mainType); err != nil {
		return nil, fmt.Errorf("select components by type: %w", err)
	}
	return components, nil
}

func (r *componentRepository) GetComponentsBySubType(ctx context.Context, mainType, subType string) ([]models.Component, error) {
	components := []models.Component{}
	query := selectComponents + ` WHERE main_type = $1 AND sub_type = $2 ORDER BY id`
	if err := r.db.SelectContext(ctx, &components, query, mainType, subType); err != nil {
		return nil, fmt.Errorf("select components by sub type: %w", err)
	}
	return components, nil
}

func (r *componentRepository) WithTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	// Execute the provided function within the transaction
	if err := fn(tx); err != nil {
		// Rollback on error
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("rollback after %v: %w", err, rollbackErr)
		}
		return err
	}

	// Commit the transaction if no errors
	return tx.Commit()
}
