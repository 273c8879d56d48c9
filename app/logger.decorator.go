package app

import (
	"context"
	"log/slog"

	"github.com/go-arrower/warehouse/alog"
)

func NewLoggedCommand[C any](logger alog.Logger, handler Command[C]) Command[C] {
	return &commandLoggingDecorator[C]{
		logger: logger,
		base:   handler,
	}
}

type commandLoggingDecorator[C any] struct {
	logger alog.Logger
	base   Command[C]
}

func (d *commandLoggingDecorator[C]) H(ctx context.Context, cmd C) error {
	cmdName := commandName(cmd)

	d.logger.DebugContext(ctx, "executing command",
		slog.String("command", cmdName),
	)

	err := d.base.H(ctx, cmd)

	if err != nil {
		d.logger.DebugContext(ctx, "failed to execute command",
			slog.String("command", cmdName),
			alog.Error(err),
		)
	} else {
		d.logger.DebugContext(ctx, "command executed successfully",
			slog.String("command", cmdName))
	}

	return err //nolint:wrapcheck // decorate but not change anything
}

func NewLoggedQuery[Q any, Res any](logger alog.Logger, handler Query[Q, Res]) Query[Q, Res] {
	return &queryLoggingDecorator[Q, Res]{
		logger: logger,
		base:   handler,
	}
}

type queryLoggingDecorator[Q any, Res any] struct {
	logger alog.Logger
	base   Query[Q, Res]
}

func (d *queryLoggingDecorator[Q, Res]) H(ctx context.Context, query Q) (Res, error) { //nolint:ireturn,lll // valid use of generics
	cmdName := commandName(query)

	d.logger.DebugContext(ctx, "executing query",
		slog.String("command", cmdName),
	)

	res, err := d.base.H(ctx, query)

	if err != nil {
		d.logger.DebugContext(ctx, "failed to execute query",
			slog.String("command", cmdName),
			alog.Error(err),
		)
	} else {
		d.logger.DebugContext(ctx, "query executed successfully",
			slog.String("command", cmdName))
	}

	return res, err //nolint:wrapcheck // decorate but not change anything
}
