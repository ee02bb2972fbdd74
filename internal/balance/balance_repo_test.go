package balance_test

import (
	"context"
	"sync"
	"testing"

	"go-leave/internal/balance"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupBalanceDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&balance.Balance{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestBalanceRepository_Reserve(t *testing.T) {
	ctx := context.Background()
	key := balance.Key{EmployeeID: "EMP001", LeaveType: "CASUAL", Period: 0}

	t.Run("success accumulates", func(t *testing.T) {
		repo := balance.NewRepository(setupBalanceDB(t))

		booked, ok, err := repo.Reserve(ctx, key, 3, 3, 4)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 3, booked)

		booked, ok, err = repo.Reserve(ctx, key, 1, 1, 4)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 4, booked)
	})

	t.Run("negative over limit leaves row unchanged", func(t *testing.T) {
		repo := balance.NewRepository(setupBalanceDB(t))

		_, ok, err := repo.Reserve(ctx, key, 3, 3, 4)
		assert.NoError(t, err)
		assert.True(t, ok)

		booked, ok, err := repo.Reserve(ctx, key, 2, 2, 4)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 3, booked)
	})

	t.Run("negative request larger than limit", func(t *testing.T) {
		repo := balance.NewRepository(setupBalanceDB(t))

		booked, ok, err := repo.Reserve(ctx, key, 5, 5, 4)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 0, booked)
	})

	t.Run("limit is checked against requested while book is stored", func(t *testing.T) {
		repo := balance.NewRepository(setupBalanceDB(t))

		booked, ok, err := repo.Reserve(ctx, key, 4, 2, 4)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 4, booked)

		booked, ok, err = repo.Reserve(ctx, key, 1, 1, 4)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 4, booked)
	})

	t.Run("concurrent reservations never overrun", func(t *testing.T) {
		repo := balance.NewRepository(setupBalanceDB(t))

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			granted int
		)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, ok, err := repo.Reserve(ctx, key, 1, 1, 4)
				assert.NoError(t, err)
				if ok {
					mu.Lock()
					granted++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 4, granted)
		booked, err := repo.Booked(ctx, key)
		assert.NoError(t, err)
		assert.Equal(t, 4, booked)
	})

	t.Run("rolled back transaction keeps nothing", func(t *testing.T) {
		db := setupBalanceDB(t)
		repo := balance.NewRepository(db)
		sqlDB, _ := db.DB()

		tx, err := sqlDB.BeginTx(ctx, nil)
		assert.NoError(t, err)
		_, ok, err := repo.WithTx(tx).Reserve(ctx, key, 2, 2, 4)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, tx.Rollback())

		booked, err := repo.Booked(ctx, key)
		assert.NoError(t, err)
		assert.Equal(t, 0, booked)
	})
}

func TestBalanceRepository_Release(t *testing.T) {
	ctx := context.Background()
	repo := balance.NewRepository(setupBalanceDB(t))
	key := balance.Key{EmployeeID: "EMP001", LeaveType: "SICK", Period: 2026}

	_, _, err := repo.Reserve(ctx, key, 4, 4, 6)
	assert.NoError(t, err)

	assert.NoError(t, repo.Release(ctx, key, 3))
	booked, _ := repo.Booked(ctx, key)
	assert.Equal(t, 1, booked)

	assert.NoError(t, repo.Release(ctx, key, 5))
	booked, _ = repo.Booked(ctx, key)
	assert.Equal(t, 0, booked)

	assert.NoError(t, repo.Release(ctx, balance.Key{EmployeeID: "nobody", LeaveType: "SICK"}, 1))
}

func TestBalanceRepository_ListByEmployee(t *testing.T) {
	ctx := context.Background()
	repo := balance.NewRepository(setupBalanceDB(t))

	_, _, _ = repo.Reserve(ctx, balance.Key{EmployeeID: "EMP001", LeaveType: "VACATION", Period: 2026}, 2, 2, 4)
	_, _, _ = repo.Reserve(ctx, balance.Key{EmployeeID: "EMP001", LeaveType: "CASUAL", Period: 2026}, 1, 1, 4)
	_, _, _ = repo.Reserve(ctx, balance.Key{EmployeeID: "EMP001", LeaveType: "CASUAL", Period: 2025}, 1, 1, 4)
	_, _, _ = repo.Reserve(ctx, balance.Key{EmployeeID: "EMP002", LeaveType: "CASUAL", Period: 2026}, 1, 1, 4)

	rows, err := repo.ListByEmployee(ctx, "EMP001", 2026)

	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "CASUAL", rows[0].LeaveType)
	assert.Equal(t, "VACATION", rows[1].LeaveType)
}
