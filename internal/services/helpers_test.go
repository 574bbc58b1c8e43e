package services

import (
	"context"
	"time"

	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

// inlineTx runs the transaction body directly.
func inlineTx(ctrl *gomock.Controller) *MockTransactor {
	tx := NewMockTransactor(ctrl)
	tx.EXPECT().
		WithinTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).
		AnyTimes()
	return tx
}

func sequence(values ...string) func() string {
	i := 0
	return func() string {
		v := values[i%len(values)]
		i++
		return v
	}
}
