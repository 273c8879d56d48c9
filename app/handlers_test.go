package app_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-arrower/warehouse/alog"
	"github.com/go-arrower/warehouse/app"
)

func TestCommandFunc_H(t *testing.T) {
	t.Parallel()

	called := false
	cmd := app.CommandFunc[request](func(_ context.Context, _ request) error {
		called = true
		return errUseCaseFails
	})

	err := cmd.H(context.Background(), request{})
	assert.ErrorIs(t, err, errUseCaseFails)
	assert.True(t, called)
}

func TestQueryFunc_H(t *testing.T) {
	t.Parallel()

	query := app.QueryFunc[genericRequest[string], response](func(_ context.Context, q genericRequest[string]) (response, error) {
		return response{Value: len(q.Value)}, nil
	})

	res, err := query.H(context.Background(), genericRequest[string]{Value: "abc"})
	assert.NoError(t, err)
	assert.Equal(t, 3, res.Value)
}

func newLogger(w io.Writer) *slog.Logger {
	return alog.NewTest(w)
}
