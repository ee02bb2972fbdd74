package balance_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-leave/internal/balance"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

type fakeBalanceRepository struct {
	listByEmployeeFn func(ctx context.Context, employeeID string, period int) ([]balance.Balance, error)
	listCalls        int
}

func (f *fakeBalanceRepository) WithTx(tx *sql.Tx) balance.Repository { return f }

func (f *fakeBalanceRepository) Reserve(ctx context.Context, key balance.Key, book, requested, limit int) (int, bool, error) {
	return book, true, nil
}

func (f *fakeBalanceRepository) Release(ctx context.Context, key balance.Key, days int) error {
	return nil
}

func (f *fakeBalanceRepository) Booked(ctx context.Context, key balance.Key) (int, error) {
	return 0, nil
}

func (f *fakeBalanceRepository) ListByEmployee(ctx context.Context, employeeID string, period int) ([]balance.Balance, error) {
	f.listCalls++
	if f.listByEmployeeFn != nil {
		return f.listByEmployeeFn(ctx, employeeID, period)
	}
	return nil, nil
}

func TestBalanceService_Summary(t *testing.T) {
	ctx := context.Background()
	cacheKey := balance.SummaryKey("EMP001", 0)

	t.Run("cache hit skips repository", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		repo := &fakeBalanceRepository{}
		svc := balance.NewService(repo, rdb)

		cached, _ := json.Marshal(balance.SummaryResponse{EmployeeID: "EMP001", Balances: []balance.BalanceResponse{{LeaveType: "SICK", Cap: 6, Booked: 2, Remaining: 4}}})
		mock.ExpectGet(cacheKey).SetVal(string(cached))

		resp, err := svc.Summary(ctx, "EMP001", 0)

		assert.NoError(t, err)
		assert.Equal(t, 0, repo.listCalls)
		assert.Equal(t, 4, resp.Balances[0].Remaining)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cache miss loads every leave type", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		repo := &fakeBalanceRepository{
			listByEmployeeFn: func(ctx context.Context, employeeID string, period int) ([]balance.Balance, error) {
				return []balance.Balance{{EmployeeID: employeeID, LeaveType: "CASUAL", BookedDays: 3}}, nil
			},
		}
		svc := balance.NewService(repo, rdb)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.Regexp().ExpectSet(cacheKey, `.*`, 10*time.Minute).SetVal("OK")

		resp, err := svc.Summary(ctx, "EMP001", 0)

		assert.NoError(t, err)
		assert.Equal(t, 1, repo.listCalls)
		assert.Len(t, resp.Balances, 7)
		for _, b := range resp.Balances {
			if b.LeaveType == "CASUAL" {
				assert.Equal(t, 3, b.Booked)
				assert.Equal(t, 1, b.Remaining)
			} else {
				assert.Equal(t, 0, b.Booked)
				assert.Equal(t, b.Cap, b.Remaining)
			}
		}
	})

	t.Run("without redis", func(t *testing.T) {
		repo := &fakeBalanceRepository{}
		svc := balance.NewService(repo, nil)

		resp, err := svc.Summary(ctx, "EMP001", 2026)

		assert.NoError(t, err)
		assert.Equal(t, 2026, resp.Period)
		assert.Len(t, resp.Balances, 7)
	})

	t.Run("negative repository error", func(t *testing.T) {
		repo := &fakeBalanceRepository{
			listByEmployeeFn: func(ctx context.Context, employeeID string, period int) ([]balance.Balance, error) {
				return nil, errors.New("db down")
			},
		}
		svc := balance.NewService(repo, nil)

		_, err := svc.Summary(ctx, "EMP001", 0)

		assert.EqualError(t, err, "db down")
	})
}

func TestBalanceService_Invalidate(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	svc := balance.NewService(&fakeBalanceRepository{}, rdb)

	mock.ExpectDel(balance.SummaryKey("EMP001", 2026)).SetVal(1)

	svc.Invalidate(context.Background(), "EMP001", 2026)

	assert.NoError(t, mock.ExpectationsWereMet())
}
