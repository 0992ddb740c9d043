package client

import (
	"sync"
	"time"
)

// Route is a client location the gateway can send the user to.
type Route string

const (
	RouteRoot  Route = "/"
	RouteLogin Route = "/login"
)

// Navigator moves the user interface to another route.
type Navigator interface {
	Navigate(Route)
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func(Route)

func (f NavigatorFunc) Navigate(r Route) { f(r) }

type noopNavigator struct{}

func (noopNavigator) Navigate(Route) {}

// UnauthorizedEvent is published once per 401 response, after the stored
// token has been removed.
type UnauthorizedEvent struct {
	Method    string
	Path      string
	RequestID string
	At        time.Time
}

type broadcaster struct {
	mu   sync.Mutex
	next int
	subs map[int]func(UnauthorizedEvent)
}

func (b *broadcaster) subscribe(fn func(UnauthorizedEvent)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[int]func(UnauthorizedEvent))
	}
	id := b.next
	b.next++
	b.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// publish calls subscribers outside the lock so they may unsubscribe.
func (b *broadcaster) publish(ev UnauthorizedEvent) {
	b.mu.Lock()
	fns := make([]func(UnauthorizedEvent), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
