package job

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/fekuna/omnipos-inventory-service/internal/alert"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingUseCase struct {
	alert.UseCase
	calls atomic.Int32
	err   error
}

func (u *countingUseCase) Reconcile(context.Context) (int, error) {
	u.calls.Add(1)
	return 1, u.err
}

func TestReconcileJob_Run(t *testing.T) {
	uc := &countingUseCase{}
	j := NewReconcileJob(uc, "@every 1h", logger.NewNop())

	j.Run()
	uc.err = errors.New("db down")
	j.Run()

	assert.Equal(t, int32(2), uc.calls.Load())
}

func TestReconcileJob_StartRejectsBadSchedule(t *testing.T) {
	j := NewReconcileJob(&countingUseCase{}, "every now and then", logger.NewNop())
	require.Error(t, j.Start())
}

func TestReconcileJob_StartStop(t *testing.T) {
	j := NewReconcileJob(&countingUseCase{}, "@every 1h", logger.NewNop())
	require.NoError(t, j.Start())
	<-j.Stop().Done()
}
