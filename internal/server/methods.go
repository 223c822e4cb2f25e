package server

import (
	"context"
	"errors"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/reveil-sh/reveil/common"
	"github.com/reveil-sh/reveil/internal/scheduler"
	"github.com/reveil-sh/reveil/pkg/alarm"
)

// Custom JSON-RPC error codes for alarm operations.
const (
	codeNotFound      = jrpc2.Code(-32001)
	codeShuttingDown  = jrpc2.Code(-32002)
	codeStoreFailure  = jrpc2.Code(-32003)
	codeInvalidParams = jrpc2.Code(-32602)
)

// Methods bridges the RPC surface to the scheduler loop. Every mutating call
// is relayed into the loop and awaited; list is served from the loop's
// read-only snapshot.
type Methods struct {
	sched   *scheduler.Scheduler
	version common.VersionResult
}

// NewMethods creates the RPC method set.
func NewMethods(sched *scheduler.Scheduler, version common.VersionResult) *Methods {
	return &Methods{sched: sched, version: version}
}

// Map returns the jrpc2 assigner for all daemon methods.
func (m *Methods) Map() handler.Map {
	return handler.Map{
		common.MethodCreate:     handler.New(m.create),
		common.MethodRemove:     handler.New(m.remove),
		common.MethodSetEnabled: handler.New(m.setEnabled),
		common.MethodList:       handler.New(m.list),
		common.MethodVersion:    handler.New(m.getVersion),
	}
}

func (m *Methods) create(ctx context.Context, p *common.CreateParams) (*common.AlarmInfo, error) {
	if p.Deadline <= 0 {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "missing required param: deadline"}
	}
	var repeat alarm.Repeat
	if p.Repeat != nil {
		repeat = *p.Repeat
	}
	if err := repeat.Validate(); err != nil {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: err.Error()}
	}
	a, err := m.sched.Create(ctx, time.Unix(p.Deadline, 0).UTC(), repeat, p.Label)
	if err != nil {
		return nil, rpcError(err)
	}
	info := common.InfoFromAlarm(a)
	return &info, nil
}

func (m *Methods) remove(ctx context.Context, p *common.IDParams) (*common.EmptyResult, error) {
	if p.ID == "" {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "missing required param: id"}
	}
	if err := m.sched.Remove(ctx, p.ID); err != nil {
		return nil, rpcError(err)
	}
	return &common.EmptyResult{}, nil
}

func (m *Methods) setEnabled(ctx context.Context, p *common.SetEnabledParams) (*common.AlarmInfo, error) {
	if p.ID == "" {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "missing required param: id"}
	}
	a, err := m.sched.SetEnabled(ctx, p.ID, p.Enabled)
	if err != nil {
		return nil, rpcError(err)
	}
	info := common.InfoFromAlarm(a)
	return &info, nil
}

func (m *Methods) list(_ context.Context) (*common.ListResult, error) {
	alarms := m.sched.List()
	out := make([]common.AlarmInfo, 0, len(alarms))
	for _, a := range alarms {
		out = append(out, common.InfoFromAlarm(a))
	}
	return &common.ListResult{Alarms: out}, nil
}

func (m *Methods) getVersion(_ context.Context) (*common.VersionResult, error) {
	v := m.version
	return &v, nil
}

// rpcError converts scheduler errors into typed JSON-RPC errors so clients
// receive the taxonomy unchanged in kind.
func rpcError(err error) error {
	var se *alarm.StoreError
	switch {
	case errors.Is(err, alarm.ErrNotFound):
		return &jrpc2.Error{Code: codeNotFound, Message: err.Error()}
	case errors.Is(err, alarm.ErrShuttingDown):
		return &jrpc2.Error{Code: codeShuttingDown, Message: err.Error()}
	case errors.As(err, &se):
		return &jrpc2.Error{Code: codeStoreFailure, Message: err.Error()}
	}
	return err
}
