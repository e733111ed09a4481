package signaling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignaler(t *testing.T) {
	var s Signaler[string]
	var got []string

	disconnectA := s.Connect(func(v string) { got = append(got, "a:"+v) })
	s.Connect(func(v string) { got = append(got, "b:"+v) })

	s.Signal("1")
	disconnectA()
	disconnectA() // no-op
	s.Signal("2")

	assert.Equal(t, []string{"a:1", "b:1", "b:2"}, got)
	assert.Equal(t, 1, s.Len())
}

func TestSignalerDisconnectDuringSignal(t *testing.T) {
	var s Signaler[int]
	var calls int

	var disconnect func()
	disconnect = s.Connect(func(int) {
		calls++
		disconnect()
	})
	s.Connect(func(int) { calls++ })

	s.Signal(0)
	assert.Equal(t, 2, calls)

	s.Signal(0)
	assert.Equal(t, 3, calls)
}

func TestDisconnectStack(t *testing.T) {
	var s Signaler[int]
	var d DisconnectStack
	var order []int

	Connect(&d, &s, func(int) {})
	Connect(&d, &s, func(int) {})
	d.Push(func() { order = append(order, 1) })
	d.Push(func() { order = append(order, 2) })

	d.Disconnect()
	assert.Equal(t, []int{2, 1}, order)
	assert.Equal(t, 0, s.Len())

	d.Pop() // empty stack
}
