// Package script runs a document's inline scripts against its node tree
// before layout. Scripts see a small DOM (document, element proxies, style,
// classList) and a console that logs through zap.
package script

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"boxwright/pkg/html"
)

// DefaultTimeout bounds a single Execute call.
const DefaultTimeout = 2 * time.Second

type Option func(*Engine)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTimeout bounds each Execute or Run call. Zero disables the bound; the
// caller's context still applies.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// Engine owns one goja runtime. It is not safe for concurrent use.
type Engine struct {
	vm      *goja.Runtime
	logger  *zap.Logger
	timeout time.Duration
	dom     *bindings
}

func New(opts ...Option) *Engine {
	e := &Engine{
		vm:      goja.New(),
		logger:  zap.NewNop(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	registerConsole(e.vm, e.logger)
	return e
}

// Execute binds doc as the global document and runs doc.Scripts in order.
// It stops at the first failing script.
func (e *Engine) Execute(ctx context.Context, doc *html.Document) error {
	e.dom = registerDocument(e.vm, doc)
	return e.guard(ctx, func() error {
		for i, src := range doc.Scripts {
			if _, err := e.vm.RunString(src); err != nil {
				return fmt.Errorf("script %d: %w", i, err)
			}
			e.logger.Debug("script executed", zap.Int("index", i), zap.Int("bytes", len(src)))
		}
		return nil
	})
}

// Run evaluates one source string against the document bound by the last
// Execute and returns its completion value exported to Go.
func (e *Engine) Run(ctx context.Context, src string) (any, error) {
	var out any
	err := e.guard(ctx, func() error {
		v, err := e.vm.RunString(src)
		if err != nil {
			return err
		}
		out = v.Export()
		return nil
	})
	return out, err
}

// guard runs fn while a watchdog interrupts the runtime when ctx ends or the
// timeout elapses.
func (e *Engine) guard(ctx context.Context, fn func() error) error {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("script not started: %w", err)
	}

	stop := context.AfterFunc(ctx, func() {
		e.vm.Interrupt(ctx.Err())
	})
	defer func() {
		stop()
		e.vm.ClearInterrupt()
	}()

	err := fn()
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		cause := ctx.Err()
		if cause == nil {
			cause = context.Canceled
		}
		e.logger.Warn("script interrupted", zap.Error(cause))
		return fmt.Errorf("script interrupted: %w", cause)
	}
	return err
}
