package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventQueue_DrainPreservesOrder(t *testing.T) {
	q := NewEventQueue()
	assert.Nil(t, q.Drain())

	q.Send(BeginEvent(1), SetEvent(1, 0.4))
	q.Send(EndEvent(1))
	assert.Equal(t, 3, q.Len())

	got := q.Drain()
	assert.Equal(t, []ParamEvent{
		{ID: 1, Action: ActionBegin},
		{ID: 1, Action: ActionSet, Value: 0.4},
		{ID: 1, Action: ActionEnd},
	}, got)
	assert.Equal(t, 0, q.Len())
	assert.Nil(t, q.Drain())
}

func TestParamEvent_String(t *testing.T) {
	assert.Equal(t, "begin(3)", BeginEvent(3).String())
	assert.Equal(t, "set(3, 0.2500)", SetEvent(3, 0.25).String())
	assert.Equal(t, "end(3)", EndEvent(3).String())
}
