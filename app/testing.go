package app

import (
	"context"
	"errors"
)

//
// This file contains convenience helpers you can use to easier test
// your calling code relying on this use case pattern.
//

var ErrUseCaseFailed = errors.New("use case failed")

func TestSuccessCommandHandler[C any]() Command[C] {
	return CommandFunc[C](func(_ context.Context, _ C) error {
		return nil
	})
}

func TestFailureCommandHandler[C any]() Command[C] {
	return CommandFunc[C](func(_ context.Context, _ C) error {
		return ErrUseCaseFailed
	})
}

func TestSuccessQueryHandler[Q any, Res any]() Query[Q, Res] {
	return QueryFunc[Q, Res](func(_ context.Context, _ Q) (Res, error) {
		var result Res

		return result, nil
	})
}

func TestFailureQueryHandler[Q any, Res any]() Query[Q, Res] {
	return QueryFunc[Q, Res](func(_ context.Context, _ Q) (Res, error) {
		var result Res

		return result, ErrUseCaseFailed
	})
}
