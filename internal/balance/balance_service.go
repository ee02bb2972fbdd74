package balance

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-leave/internal/policy"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const summaryKeyPrefix = "leave:balances:"

func SummaryKey(employeeID string, period int) string {
	return fmt.Sprintf("%s%s:%d", summaryKeyPrefix, employeeID, period)
}

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	Summary(ctx context.Context, employeeID string, period int) (SummaryResponse, error)
	Invalidate(ctx context.Context, employeeID string, period int)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	ttl    time.Duration
	logger *zap.Logger
}

// NewService builds the balance reader. rdb may be nil to disable caching.
func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		ttl:    10 * time.Minute,
		logger: l,
	}
}

func (s *service) Summary(ctx context.Context, employeeID string, period int) (SummaryResponse, error) {
	cacheKey := SummaryKey(employeeID, period)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp SummaryResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (any, error) {
		rows, err := s.repo.ListByEmployee(ctx, employeeID, period)
		if err != nil {
			return nil, err
		}

		resp := buildSummary(employeeID, period, rows)

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, data, s.ttl).Err(); err != nil {
					s.logger.Warn("cache balance summary failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("load balance summary failed", zap.String("employee_id", employeeID), zap.Error(err))
		return SummaryResponse{}, err
	}

	return v.(SummaryResponse), nil
}

func (s *service) Invalidate(ctx context.Context, employeeID string, period int) {
	if s.rdb == nil {
		return
	}
	cacheKey := SummaryKey(employeeID, period)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Warn("invalidate balance summary failed", zap.String("key", cacheKey), zap.Error(err))
	}
}

func buildSummary(employeeID string, period int, rows []Balance) SummaryResponse {
	booked := make(map[string]int, len(rows))
	for _, r := range rows {
		booked[r.LeaveType] = r.BookedDays
	}

	resp := SummaryResponse{EmployeeID: employeeID, Period: period}
	for _, lt := range policy.LeaveTypes() {
		c, _ := policy.Cap(lt)
		b := booked[string(lt)]
		remaining := c - b
		if remaining < 0 {
			remaining = 0
		}
		resp.Balances = append(resp.Balances, BalanceResponse{
			LeaveType: string(lt),
			Cap:       c,
			Booked:    b,
			Remaining: remaining,
		})
	}
	return resp
}
