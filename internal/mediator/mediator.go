// Package mediator routes commands and queries to their handlers through an
// ordered chain of behaviors.
package mediator

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/oksasatya/employee-hierarchy-api/pkg/result"
)

var (
	ErrHandlerNotFound   = errors.New("mediator: no handler registered")
	ErrDuplicateHandler  = errors.New("mediator: handler already registered")
	ErrKindMismatch      = errors.New("mediator: request sent with the wrong kind")
	ErrUnexpectedOutcome = errors.New("mediator: handler returned an unexpected result type")
)

// Kind separates state changing commands from read only queries.
type Kind int

const (
	KindCommand Kind = iota
	KindQuery
)

func (k Kind) String() string {
	if k == KindQuery {
		return "query"
	}
	return "command"
}

// Outcome is the type erased Result seen by behaviors.
type Outcome interface {
	Failed() bool
	Failure() *result.Error
}

// Request describes the message flowing through the pipeline.
type Request struct {
	Name    string
	Kind    Kind
	Payload any
}

// Next continues the pipeline; behaviors may call it at most once.
type Next func(ctx context.Context) (Outcome, error)

// Behavior wraps handler execution. A non-nil error is fatal; business failures
// travel inside the Outcome.
type Behavior func(ctx context.Context, req Request, next Next) (Outcome, error)

// Handler handles one request type.
type Handler[Req any, Res any] interface {
	Handle(ctx context.Context, req Req) (result.Result[Res], error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[Req any, Res any] func(ctx context.Context, req Req) (result.Result[Res], error)

func (f HandlerFunc[Req, Res]) Handle(ctx context.Context, req Req) (result.Result[Res], error) {
	return f(ctx, req)
}

type registration struct {
	name   string
	kind   Kind
	handle func(ctx context.Context, payload any) (Outcome, error)
}

// Dispatcher holds the handler table and behavior chain. Register everything
// before serving; the table is read only afterwards.
type Dispatcher struct {
	handlers  map[reflect.Type]registration
	behaviors []Behavior
}

// New builds a dispatcher; behaviors[0] is the outermost.
func New(behaviors ...Behavior) *Dispatcher {
	return &Dispatcher{handlers: make(map[reflect.Type]registration), behaviors: behaviors}
}

func typeOf[Req any]() reflect.Type {
	return reflect.TypeOf((*Req)(nil)).Elem()
}

func register[Req any, Res any](d *Dispatcher, kind Kind, h Handler[Req, Res]) error {
	t := typeOf[Req]()
	if _, ok := d.handlers[t]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, t.Name())
	}
	d.handlers[t] = registration{
		name: t.Name(),
		kind: kind,
		handle: func(ctx context.Context, payload any) (Outcome, error) {
			res, err := h.Handle(ctx, payload.(Req))
			if err != nil {
				return nil, err
			}
			return res, nil
		},
	}
	return nil
}

// RegisterCommand binds the handler for command type Req.
func RegisterCommand[Req any, Res any](d *Dispatcher, h Handler[Req, Res]) error {
	return register(d, KindCommand, h)
}

// RegisterQuery binds the handler for query type Req.
func RegisterQuery[Req any, Res any](d *Dispatcher, h Handler[Req, Res]) error {
	return register(d, KindQuery, h)
}

// Require fails when any of the sample requests has no registered handler.
func (d *Dispatcher) Require(requests ...any) error {
	var errs []error
	for _, r := range requests {
		t := reflect.TypeOf(r)
		if _, ok := d.handlers[t]; !ok {
			errs = append(errs, fmt.Errorf("%w for %s", ErrHandlerNotFound, t))
		}
	}
	return errors.Join(errs...)
}

// Send dispatches a command.
func Send[Req any, Res any](ctx context.Context, d *Dispatcher, req Req) (result.Result[Res], error) {
	return dispatch[Req, Res](ctx, d, KindCommand, req)
}

// Query dispatches a query.
func Query[Req any, Res any](ctx context.Context, d *Dispatcher, req Req) (result.Result[Res], error) {
	return dispatch[Req, Res](ctx, d, KindQuery, req)
}

func dispatch[Req any, Res any](ctx context.Context, d *Dispatcher, kind Kind, req Req) (result.Result[Res], error) {
	var zero result.Result[Res]
	reg, ok := d.handlers[typeOf[Req]()]
	if !ok {
		return zero, fmt.Errorf("%w for %s", ErrHandlerNotFound, typeOf[Req]())
	}
	if reg.kind != kind {
		return zero, fmt.Errorf("%w: %s is a %s", ErrKindMismatch, reg.name, reg.kind)
	}

	info := Request{Name: reg.name, Kind: reg.kind, Payload: req}
	next := Next(func(ctx context.Context) (Outcome, error) {
		return reg.handle(ctx, req)
	})
	for i := len(d.behaviors) - 1; i >= 0; i-- {
		b, inner := d.behaviors[i], next
		next = func(ctx context.Context) (Outcome, error) {
			return b(ctx, info, inner)
		}
	}

	out, err := next(ctx)
	if err != nil {
		return zero, err
	}
	if out == nil {
		return zero, fmt.Errorf("%w: nil outcome from %s", ErrUnexpectedOutcome, reg.name)
	}
	if typed, ok := out.(result.Result[Res]); ok {
		return typed, nil
	}
	// Behaviors that short circuit produce an untyped failure.
	if out.Failed() {
		return result.Fail[Res](out.Failure()), nil
	}
	return zero, fmt.Errorf("%w: %T from %s", ErrUnexpectedOutcome, out, reg.name)
}

type failure struct{ err *result.Error }

func (f failure) Failed() bool           { return true }
func (f failure) Failure() *result.Error { return f.err }

// Fail lets a behavior short circuit with a business failure.
func Fail(err *result.Error) Outcome {
	return failure{err: err}
}
