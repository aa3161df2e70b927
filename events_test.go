package platypus

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventQueueOrder(t *testing.T) {
	var q eventQueue
	q.push(EventJump)
	q.pushSurface(EventParent, 4)
	q.push(EventFalling)

	got := q.drain()
	require.Len(t, got, 3)
	assert.Equal(t, Event{Kind: EventJump}, got[0])
	assert.Equal(t, Event{Kind: EventParent, Surface: 4}, got[1])
	assert.Equal(t, Event{Kind: EventFalling}, got[2])

	assert.Nil(t, q.drain())
}

// Intent events queued between updates are delivered by the next update, after
// the transition events of that frame are known, in queue order.
func TestEventsFlushOncePerUpdate(t *testing.T) {
	w := &flatWorld{hasGround: true, groundID: 7, groundGroup: "ground"}
	r := &recorder{}
	b := groundedBody(t, testConfig(), w, r)

	b.Jump(800)
	assert.Empty(t, r.events, "intent events wait for the next update")

	b.Update(testDT)
	require.NotEmpty(t, r.events)
	assert.Equal(t, EventJump, r.events[0].Kind)
}

func TestNoListenerIsFine(t *testing.T) {
	w := &flatWorld{hasGround: true, groundID: 7, groundGroup: "ground"}
	b, err := New(testConfig(), w, cp.Vector{Y: 100})
	require.NoError(t, err)

	// Transitions with no listener registered must not accumulate or panic.
	settle(t, b, 120)
	b.Jump(400)
	b.Update(testDT)
}
