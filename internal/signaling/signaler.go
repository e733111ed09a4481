package signaling

type callback[T any] func(T)

// Signaler manages signaling events of type T to callbacks.
// A zero-value Signaler is ready to use.
type Signaler[T any] struct {
	callbacks []*callback[T]
}

// Connect connects a callback to the signaler. The returned function
// disconnects the callback. Callbacks are called in the order they were
// connected.
func (s *Signaler[T]) Connect(f func(T)) func() {
	cb := (*callback[T])(&f)
	s.callbacks = append(s.callbacks, cb)

	return func() {
		for i, c := range s.callbacks {
			if c == cb {
				s.callbacks = append(s.callbacks[:i:i], s.callbacks[i+1:]...)
				return
			}
		}
	}
}

// Signal signals all callbacks with the given value. Callbacks connected or
// disconnected from within a callback take effect on the next Signal.
func (s *Signaler[T]) Signal(v T) {
	callbacks := s.callbacks
	for _, cb := range callbacks {
		(*cb)(v)
	}
}

// Len returns the number of connected callbacks.
func (s *Signaler[T]) Len() int {
	return len(s.callbacks)
}

// Disconnect disconnects all callbacks.
func (s *Signaler[T]) Disconnect() {
	s.callbacks = nil
}

// DisconnectStack is a stack of disconnect functions.
// Use it to defer disconnecting callbacks.
type DisconnectStack struct {
	funcs []func()
}

// Push pushes a disconnect function to the stack.
func (d *DisconnectStack) Push(funcs ...func()) {
	d.funcs = append(d.funcs, funcs...)
}

// Connect connects a callback to s and pushes its disconnect function.
func Connect[T any](d *DisconnectStack, s *Signaler[T], f func(T)) {
	d.Push(s.Connect(f))
}

// Pop pops a disconnect function from the stack and calls it.
func (d *DisconnectStack) Pop() {
	if len(d.funcs) == 0 {
		return
	}

	f := d.funcs[len(d.funcs)-1]
	d.funcs[len(d.funcs)-1] = nil
	d.funcs = d.funcs[:len(d.funcs)-1]
	f()
}

// Disconnect calls every disconnect function, most recent first.
func (d *DisconnectStack) Disconnect() {
	for len(d.funcs) > 0 {
		d.Pop()
	}
}
