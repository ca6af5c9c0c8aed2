package persistence

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/erp/stockledger/internal/domain/warehouse"
	"github.com/erp/stockledger/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var warehouseColumns = []string{"id", "code", "name", "type", "status", "address", "is_default", "version", "created_at", "updated_at"}

// newSQLiteDatabase opens a migrated file-backed sqlite database
func newSQLiteDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(&config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "ledger.db")})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestGormWarehouseRepository_FindByID(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormWarehouseRepository(gormDB)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		id := uuid.New()
		now := time.Now()
		rows := sqlmock.NewRows(warehouseColumns).
			AddRow(id, "WH001", "Main", "physical", "active", "1 Dock Rd", true, 3, now, now)
		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(id, 1).
			WillReturnRows(rows)

		w, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, w.ID)
		assert.Equal(t, "WH001", w.Code)
		assert.Equal(t, warehouse.TypePhysical, w.Type)
		assert.True(t, w.IsDefault)
		assert.Equal(t, 3, w.Version)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(id, 1).
			WillReturnRows(sqlmock.NewRows(warehouseColumns))

		_, err := repo.FindByID(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormWarehouseRepository_FindByCode_Uppercases(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormWarehouseRepository(gormDB)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE code = \$1 ORDER BY .* LIMIT .*`).
		WithArgs("WH001", 1).
		WillReturnRows(sqlmock.NewRows(warehouseColumns).
			AddRow(uuid.New(), "WH001", "Main", "physical", "active", "", false, 1, now, now))

	w, err := repo.FindByCode(context.Background(), "wh001")
	require.NoError(t, err)
	assert.Equal(t, "WH001", w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormWarehouseRepository_ExistsByCode(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormWarehouseRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "warehouses" WHERE code = $1`)).
		WithArgs("WH001").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "warehouses" WHERE code = $1`)).
		WithArgs("WH404").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repo.ExistsByCode(context.Background(), "wh001")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByCode(context.Background(), "WH404")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormWarehouseRepository_SQLite(t *testing.T) {
	db := newSQLiteDatabase(t)
	repo := NewGormWarehouseRepository(db.DB)
	ctx := context.Background()

	main, err := warehouse.NewWarehouse("WH-MAIN", "Main Depot", warehouse.TypePhysical)
	require.NoError(t, err)
	require.NoError(t, main.SetDefault(true))
	transit, err := warehouse.NewWarehouse("WH-TRANSIT", "Transit Hub", warehouse.TypeTransit)
	require.NoError(t, err)
	north, err := warehouse.NewWarehouse("WH-NORTH", "North Store", warehouse.TypePhysical)
	require.NoError(t, err)
	require.NoError(t, north.Deactivate())

	for _, w := range []*warehouse.Warehouse{main, transit, north} {
		require.NoError(t, repo.Save(ctx, w))
	}

	byCode := shared.Filter{OrderBy: "code", OrderDir: "asc"}

	t.Run("list by code ascending", func(t *testing.T) {
		items, total, err := repo.List(ctx, warehouse.Filter{Filter: byCode})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, items, 3)
		assert.Equal(t, "WH-MAIN", items[0].Code)
		assert.Equal(t, "WH-NORTH", items[1].Code)
		assert.Equal(t, "WH-TRANSIT", items[2].Code)
	})

	t.Run("unset direction sorts descending", func(t *testing.T) {
		items, _, err := repo.List(ctx, warehouse.Filter{})
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "WH-TRANSIT", items[0].Code)
		assert.Equal(t, "WH-MAIN", items[2].Code)
	})

	t.Run("search is case insensitive", func(t *testing.T) {
		items, total, err := repo.List(ctx, warehouse.Filter{Search: "hub"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, transit.ID, items[0].ID)
	})

	t.Run("filters by status and type", func(t *testing.T) {
		_, total, err := repo.List(ctx, warehouse.Filter{Status: warehouse.StatusInactive})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)

		items, _, err := repo.List(ctx, warehouse.Filter{Type: warehouse.TypeTransit})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "WH-TRANSIT", items[0].Code)
	})

	t.Run("pagination keeps the total", func(t *testing.T) {
		page := byCode
		page.Page, page.PageSize = 2, 2
		items, total, err := repo.List(ctx, warehouse.Filter{Filter: page})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, items, 1)
		assert.Equal(t, "WH-TRANSIT", items[0].Code)
	})

	t.Run("clear default", func(t *testing.T) {
		require.NoError(t, repo.ClearDefault(ctx))
		w, err := repo.FindByID(ctx, main.ID)
		require.NoError(t, err)
		assert.False(t, w.IsDefault)
	})

	t.Run("save updates an existing row", func(t *testing.T) {
		require.NoError(t, transit.Update("Transit Yard", "Pier 4"))
		require.NoError(t, repo.Save(ctx, transit))

		w, err := repo.FindByCode(ctx, "wh-transit")
		require.NoError(t, err)
		assert.Equal(t, "Transit Yard", w.Name)
		assert.Equal(t, "Pier 4", w.Address)
	})
}
