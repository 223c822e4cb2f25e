package scheduler

import (
	"time"

	"github.com/reveil-sh/reveil/pkg/alarm"
)

type opKind int

const (
	opCreate opKind = iota
	opRemove
	opSetEnabled
	opPoke
)

// request is one serialized unit of work for the loop goroutine.
type request struct {
	op opKind

	// opCreate
	deadline time.Time
	repeat   alarm.Repeat
	label    string

	// opRemove / opSetEnabled
	id      string
	enabled bool

	resp chan response
}

type response struct {
	alarm *alarm.Alarm
	err   error
}
