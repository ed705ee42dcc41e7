package mysql

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domproduct "example.com/storefront/internal/domain/product"
)

const hatID = "652f1c2e9b1e8a3d4c5b6a71"

var columns = []string{"id", "name", "description", "price", "category", "image"}

func newRepo(t *testing.T) (*ProductRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewProductRepository(db), mock
}

func TestProductRepository_Create(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO products (id, name, description, price, category, image)")).
		WithArgs(hatID, "Red Hat", "wool", 10.0, "Hats", "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	p, err := repo.Create(context.Background(), &domproduct.Product{
		ID: hatID, Name: "Red Hat", Description: "wool", Price: 10, Category: "Hats",
	})
	require.NoError(t, err)
	require.Equal(t, hatID, p.ID)
}

func TestProductRepository_GetByID(t *testing.T) {
	repo, mock := newRepo(t)
	query := regexp.QuoteMeta("SELECT id, name, description, price, category, image FROM products WHERE id = ?")

	mock.ExpectQuery(query).
		WithArgs(hatID).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(hatID, "Red Hat", "wool", 10.0, "Hats", "http://img/hat.png"))
	mock.ExpectQuery(query).
		WithArgs("652f1c2e9b1e8a3d4c5b6a79").
		WillReturnRows(sqlmock.NewRows(columns))

	p, err := repo.GetByID(context.Background(), hatID)
	require.NoError(t, err)
	require.Equal(t, "Red Hat", p.Name)
	require.Equal(t, "http://img/hat.png", p.Image)

	_, err = repo.GetByID(context.Background(), "652f1c2e9b1e8a3d4c5b6a79")
	require.ErrorIs(t, err, domproduct.ErrProductNotFound)
}

func TestProductRepository_List(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, price, category, image FROM products ORDER BY created_at, id")).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(hatID, "Red Hat", "wool", 10.0, "Hats", "").
			AddRow("652f1c2e9b1e8a3d4c5b6a72", "Blue Shirt", "cotton", 25.0, "Shirts", ""))

	products, err := repo.List(context.Background(), domproduct.ListFilter{})
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, "Blue Shirt", products[1].Name)
}

func TestProductRepository_ListByCategory(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE category = ? ORDER BY created_at, id")).
		WithArgs("Shoes").
		WillReturnRows(sqlmock.NewRows(columns))

	products, err := repo.List(context.Background(), domproduct.ListFilter{Category: "Shoes"})
	require.NoError(t, err)
	require.NotNil(t, products)
	require.Empty(t, products)
}

func TestProductRepository_ListError(t *testing.T) {
	repo, mock := newRepo(t)
	dbErr := errors.New("connection reset")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).WillReturnError(dbErr)

	_, err := repo.List(context.Background(), domproduct.ListFilter{})
	require.ErrorIs(t, err, dbErr)
}

func TestProductRepository_Update(t *testing.T) {
	repo, mock := newRepo(t)
	exec := regexp.QuoteMeta("UPDATE products SET name = ?, description = ?, price = ?, category = ?, image = ?")

	mock.ExpectExec(exec).
		WithArgs("Red Hat", "felt", 12.0, "Hats", "", hatID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(exec).
		WithArgs("Ghost", "", 1.0, "", "", "652f1c2e9b1e8a3d4c5b6a79").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), &domproduct.Product{ID: hatID, Name: "Red Hat", Description: "felt", Price: 12, Category: "Hats"})
	require.NoError(t, err)

	_, err = repo.Update(context.Background(), &domproduct.Product{ID: "652f1c2e9b1e8a3d4c5b6a79", Name: "Ghost", Price: 1})
	require.ErrorIs(t, err, domproduct.ErrProductNotFound)
}

func TestProductRepository_Delete(t *testing.T) {
	repo, mock := newRepo(t)
	exec := regexp.QuoteMeta("DELETE FROM products WHERE id = ?")

	mock.ExpectExec(exec).WithArgs(hatID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(exec).WithArgs(hatID).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), hatID))
	require.ErrorIs(t, repo.Delete(context.Background(), hatID), domproduct.ErrProductNotFound)
}
