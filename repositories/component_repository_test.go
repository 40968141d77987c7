package repositories_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sengkeat-dex/Tokenize/models"
	"github.com/sengkeat-dex/Tokenize/repositories"
)

var componentColumns = []string{"id", "main_type", "sub_type", "components"}

func newRepository(t *testing.T) (repositories.ComponentRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repositories.NewComponentRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestEnsureSchema(t *testing.T) {
	repo, mock := newRepository(t)
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS tokenization_components")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertComponent(t *testing.T) {
	repo, mock := newRepository(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tokenization_components (main_type, sub_type, components)")).
		WithArgs("Digital Wallet", "Custodial", "HSM").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	id, err := repo.InsertComponent(context.Background(), models.NewComponent{
		MainType: "Digital Wallet", SubType: "Custodial", Components: "HSM",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertComponentsCommits(t *testing.T) {
	repo, mock := newRepository(t)
	insert := regexp.QuoteMeta("INSERT INTO tokenization_components")
	mock.ExpectBegin()
	mock.ExpectQuery(insert).WithArgs("A", "a", "x").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(insert).WithArgs("B", "b", "y").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	ids, err := repo.InsertComponents(context.Background(), []models.NewComponent{
		{MainType: "A", SubType: "a", Components: "x"},
		{MainType: "B", SubType: "b", Components: "y"},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertComponentsRollsBack(t *testing.T) {
	repo, mock := newRepository(t)
	insert := regexp.QuoteMeta("INSERT INTO tokenization_components")
	mock.ExpectBegin()
	mock.ExpectQuery(insert).WithArgs("A", "a", "x").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(insert).WithArgs("B", "b", "y").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	ids, err := repo.InsertComponents(context.Background(), []models.NewComponent{
		{MainType: "A", SubType: "a", Components: "x"},
		{MainType: "B", SubType: "b", Components: "y"},
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Nil(t, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllComponents(t *testing.T) {
	repo, mock := newRepository(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, main_type, sub_type, components FROM tokenization_components ORDER BY id")).
		WillReturnRows(sqlmock.NewRows(componentColumns).
			AddRow(1, "Asset Tokenization", "Equity", "Cap table").
			AddRow(2, "Digital Wallet", "Custodial", "HSM"))

	components, err := repo.GetAllComponents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Component{
		{ID: 1, MainType: "Asset Tokenization", SubType: "Equity", Components: "Cap table"},
		{ID: 2, MainType: "Digital Wallet", SubType: "Custodial", Components: "HSM"},
	}, components)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetComponentsByTypeEmpty(t *testing.T) {
	repo, mock := newRepository(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE main_type = $1 ORDER BY id")).
		WithArgs("NonExistentType").
		WillReturnRows(sqlmock.NewRows(componentColumns))

	components, err := repo.GetComponentsByType(context.Background(), "NonExistentType")
	require.NoError(t, err)
	assert.NotNil(t, components)
	assert.Empty(t, components)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetComponentsBySubType(t *testing.T) {
	repo, mock := newRepository(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE main_type = $1 AND sub_type = $2 ORDER BY id")).
		WithArgs("Digital Wallet", "Custodial").
		WillReturnRows(sqlmock.NewRows(componentColumns).AddRow(2, "Digital Wallet", "Custodial", "HSM"))

	components, err := repo.GetComponentsBySubType(context.Background(), "Digital Wallet", "Custodial")
	require.NoError(t, err)
	require.Len(t, components, 1)
	assert.Equal(t, int64(2), components[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectErrorIsWrapped(t *testing.T) {
	repo, mock := newRepository(t)
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset"))

	_, err := repo.GetAllComponents(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "select components")
	assert.Contains(t, err.Error(), "connection reset")
}
