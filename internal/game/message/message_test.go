package message_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wildone/internal/game/message"
)

func TestSignal_DeliversInSubscriptionOrder(t *testing.T) {
	var s message.Signal[int]
	var got []string
	s.Subscribe(func(v int) { got = append(got, fmt.Sprintf("a%d", v)) })
	s.Subscribe(func(v int) { got = append(got, fmt.Sprintf("b%d", v)) })
	s.Publish(1)
	assert.Equal(t, []string{"a1", "b1"}, got)
}

func TestSignal_Unsubscribe(t *testing.T) {
	var s message.Signal[string]
	calls := 0
	id := s.Subscribe(func(string) { calls++ })
	s.Publish("x")
	s.Unsubscribe(id)
	s.Publish("y")
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, s.Len())

	// Unknown ids are ignored.
	s.Unsubscribe(id)
	s.Unsubscribe(999)
}

func TestSignal_HandlerRemovedMidDeliveryIsSkipped(t *testing.T) {
	var s message.Signal[struct{}]
	var second message.Subscription
	secondCalled := false
	s.Subscribe(func(struct{}) { s.Unsubscribe(second) })
	second = s.Subscribe(func(struct{}) { secondCalled = true })
	s.Publish(struct{}{})
	assert.False(t, secondCalled)
}

func TestSignal_HandlerAddedMidDeliveryWaitsForNextEvent(t *testing.T) {
	var s message.Signal[int]
	late := 0
	s.Subscribe(func(int) {
		if late == 0 {
			s.Subscribe(func(int) { late++ })
		}
	})
	s.Publish(1)
	assert.Equal(t, 0, late)
	s.Publish(2)
	assert.Equal(t, 1, late)
}

func TestBroker_ConcurrentSubscribeAndRaise(t *testing.T) {
	b := message.NewBroker(zap.NewNop())
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := b.Subscribe(func(string) {})
			b.Raise("hello")
			b.Unsubscribe(id)
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, b.Subscribers())
}

func TestBroker_Raise(t *testing.T) {
	b := message.NewBroker(zap.NewNop())
	var got []string
	id := b.Subscribe(func(m string) { got = append(got, m) })
	b.Raise("")
	b.Raise("You see a rat here!")
	b.Unsubscribe(id)
	b.Raise("ignored")
	assert.Equal(t, []string{"", "You see a rat here!"}, got)
}

func TestLog_EvictsOldest(t *testing.T) {
	l := message.NewLog(3)
	for _, m := range []string{"a", "b", "c", "d"} {
		l.Append(m)
	}
	assert.Equal(t, []string{"b", "c", "d"}, l.Entries())
	assert.Equal(t, 3, l.Limit())
}

func TestLog_DefaultLimit(t *testing.T) {
	l := message.NewLog(0)
	assert.Equal(t, message.DefaultLogLimit, l.Limit())
}

func TestLog_Property_BoundedAndKeepsNewest(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		limit := rapid.IntRange(1, 20).Draw(rt, "limit")
		n := rapid.IntRange(0, 60).Draw(rt, "n")
		l := message.NewLog(limit)
		for i := 0; i < n; i++ {
			l.Append(fmt.Sprint(i))
		}
		entries := l.Entries()
		require.LessOrEqual(rt, len(entries), limit)
		if n > 0 {
			assert.Equal(rt, fmt.Sprint(n-1), entries[len(entries)-1])
			assert.Equal(rt, fmt.Sprint(n-len(entries)), entries[0])
		}
	})
}
