package repositories_test

import (
	"fmt"
	"sync"
	"testing"

	"estilo/internal/models"
	"estilo/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory SQLite database for one test. The
// single connection keeps concurrent transactions serialized the way a
// real server's row locks would.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	sqlDB, err := db.DB()
	assert.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Product{},
		&models.ProductImage{},
		&models.Order{},
		&models.OrderItem{},
	)
	assert.NoError(t, err)
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, desc string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Description:  desc,
		Price:        price,
		InitialStock: stock,
		CurrentStock: stock,
	}
	assert.NoError(t, db.Create(product).Error)
	return product
}

func productStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var product models.Product
	assert.NoError(t, db.First(&product, id).Error)
	return product.CurrentStock
}

func TestOrderRepository_Create_SnapshotAndDecrement(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	a := seedProduct(t, db, "Product A", 10.00, 10)
	b := seedProduct(t, db, "Product B", 25.50, 5)

	order, err := repo.Create(1, "PENDING", []repositories.OrderItemRequest{
		{ProductID: a.ID, Quantity: 2},
		{ProductID: b.ID, Quantity: 1},
	})
	assert.NoError(t, err)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, 10.00, order.Items[0].Price)
	assert.Equal(t, 25.50, order.Items[1].Price)
	assert.Equal(t, 45.50, order.Total())

	assert.Equal(t, 8, productStock(t, db, a.ID))
	assert.Equal(t, 4, productStock(t, db, b.ID))

	// Later price changes must not rewrite the captured prices.
	assert.NoError(t, db.Model(&models.Product{}).Where("id = ?", a.ID).Update("price", 99.99).Error)

	reloaded, err := repo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, 10.00, reloaded.Items[0].Price)
	assert.NotNil(t, reloaded.Items[0].Product)
	assert.Equal(t, 99.99, reloaded.Items[0].Product.Price)
}

func TestOrderRepository_Create_InsufficientStockRollsBack(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	a := seedProduct(t, db, "Product A", 10.00, 10)
	b := seedProduct(t, db, "Product B", 25.50, 5)

	_, err := repo.Create(1, "PENDING", []repositories.OrderItemRequest{
		{ProductID: a.ID, Quantity: 2},
		{ProductID: b.ID, Quantity: 999},
	})
	assert.ErrorIs(t, err, models.ErrInsufficientStock)

	// The decrement already applied for product A must be rolled back too.
	assert.Equal(t, 10, productStock(t, db, a.ID))
	assert.Equal(t, 5, productStock(t, db, b.ID))

	var orderCount, itemCount int64
	assert.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)
}

func TestOrderRepository_Create_ProductNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	a := seedProduct(t, db, "Product A", 10.00, 10)

	_, err := repo.Create(1, "PENDING", []repositories.OrderItemRequest{
		{ProductID: a.ID, Quantity: 1},
		{ProductID: 9999, Quantity: 1},
	})
	assert.ErrorIs(t, err, models.ErrProductNotFound)
	assert.Contains(t, err.Error(), "9999")
	assert.Equal(t, 10, productStock(t, db, a.ID))
}

func TestOrderRepository_Delete_CascadesWithoutRestoringStock(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	a := seedProduct(t, db, "Product A", 10.00, 10)

	order, err := repo.Create(1, "PENDING", []repositories.OrderItemRequest{
		{ProductID: a.ID, Quantity: 3},
	})
	assert.NoError(t, err)
	assert.Equal(t, 7, productStock(t, db, a.ID))

	assert.NoError(t, repo.Delete(order.ID))

	_, err = repo.GetByID(order.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	var itemCount int64
	assert.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error)
	assert.Zero(t, itemCount)

	// Deleting an order does not return its stock.
	assert.Equal(t, 7, productStock(t, db, a.ID))

	assert.ErrorIs(t, repo.Delete(order.ID), models.ErrNotFound)
}

func TestOrderRepository_Create_ConcurrentOrdersSingleWinner(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	a := seedProduct(t, db, "Product A", 10.00, 5)

	// Two concurrent orders each request the full remaining stock.
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(uint(i+1), "PENDING", []repositories.OrderItemRequest{
				{ProductID: a.ID, Quantity: 5},
			})
		}(i)
	}
	wg.Wait()

	var failures int
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, models.ErrInsufficientStock)
			failures++
		}
	}
	assert.Equal(t, 1, failures, "exactly one of the two orders must fail")
	assert.Equal(t, 0, productStock(t, db, a.ID))
}

func TestOrderRepository_GetAll_Pagination(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	a := seedProduct(t, db, "Product A", 10.00, 100)
	for i := 0; i < 5; i++ {
		_, err := repo.Create(1, "PENDING", []repositories.OrderItemRequest{
			{ProductID: a.ID, Quantity: 1},
		})
		assert.NoError(t, err)
	}

	page, err := repo.GetAll(0, 2)
	assert.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := repo.GetAll(4, 100)
	assert.NoError(t, err)
	assert.Len(t, rest, 1)
}
