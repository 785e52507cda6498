package state

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubjectHoldsValue(t *testing.T) {
	s := NewSubject(42)
	require.Equal(t, 42, s.Value())

	s.Publish(7)
	require.Equal(t, 7, s.Value())
}

func TestSubjectNotifiesInMutationOrder(t *testing.T) {
	s := NewSubject(0)

	var seen []int
	s.Subscribe(func(v int) { seen = append(seen, v) })

	s.Publish(1)
	s.Publish(2)
	s.Publish(3)

	require.Equal(t, []int{1, 2, 3}, seen)
}

func TestSubjectMultipleSubscribers(t *testing.T) {
	s := NewSubject("")

	var first, second []string
	s.Subscribe(func(v string) { first = append(first, v) })
	s.Subscribe(func(v string) { second = append(second, v) })

	s.Publish("a")

	require.Equal(t, []string{"a"}, first)
	require.Equal(t, []string{"a"}, second)
}

func TestSubjectUnsubscribe(t *testing.T) {
	s := NewSubject(0)

	var calls int
	unsubscribe := s.Subscribe(func(int) { calls++ })

	s.Publish(1)
	unsubscribe()
	s.Publish(2)

	require.Equal(t, 1, calls)

	// Unsubscribing twice must not panic or remove someone else.
	unsubscribe()
	s.Publish(3)
	require.Equal(t, 1, calls)
}
