package contextutil_test

import (
	"context"
	"testing"

	"go-leave/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestExtractMetadata(t *testing.T) {
	ctx := context.Background()
	ctx = contextutil.WithRequestID(ctx, "req-1")
	ctx = contextutil.WithUserID(ctx, "user-1")
	ctx = contextutil.WithEmployeeID(ctx, "EMP001")
	ctx = contextutil.WithRole(ctx, "employee")

	meta := contextutil.ExtractMetadata(ctx)

	assert.Equal(t, "req-1", meta.RequestID)
	assert.Equal(t, "user-1", meta.UserID)
	assert.Equal(t, "EMP001", meta.EmployeeID)
	assert.Equal(t, "employee", meta.Role)
}

func TestGetLogger(t *testing.T) {
	t.Run("returns scoped logger", func(t *testing.T) {
		scoped := zap.NewNop().Named("scoped")
		ctx := contextutil.WithLogger(context.Background(), scoped)

		assert.Same(t, scoped, contextutil.GetLogger(ctx, nil))
	})

	t.Run("falls back to default", func(t *testing.T) {
		def := zap.NewNop()

		assert.Same(t, def, contextutil.GetLogger(context.Background(), def))
	})

	t.Run("never nil", func(t *testing.T) {
		assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))
	})
}
