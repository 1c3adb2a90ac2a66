// Package notifier provides a broadcast hub for SSE updates. Listeners
// receive a Signal describing what changed and re-query the relevant state.
package notifier

import "sync"

// Signal says which part of the workbench changed.
type Signal int

const (
	// SignalConfigs means the watched configs directory changed on disk.
	SignalConfigs Signal = iota
	// SignalValidation means an asynchronous remote validation merged into
	// the aggregate report.
	SignalValidation
)

// Notifier broadcasts signals to all subscribed listeners.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan Signal]struct{}
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{listeners: make(map[chan Signal]struct{})}
}

// Subscribe returns a channel receiving broadcast signals. Callers must
// Unsubscribe when done to avoid goroutine leaks.
func (n *Notifier) Subscribe() chan Signal {
	ch := make(chan Signal, 4)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a listener channel.
func (n *Notifier) Unsubscribe(ch chan Signal) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Broadcast sends a signal to all listeners. Non-blocking: a listener whose
// buffer is full misses this signal and catches up on the next one.
func (n *Notifier) Broadcast(sig Signal) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for ch := range n.listeners {
		select {
		case ch <- sig:
		default:
		}
	}
}
