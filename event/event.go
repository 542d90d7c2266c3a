package event // import "github.com/svgpress/svgpress/event"

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

type Event struct {
	Name string
	Data map[string]interface{}

	handled bool
}

func (e *Event) StopPropagation() {
	e.handled = true
}

// A Handler reacts to a single emitted Event.
type Handler interface {
	HandleEvent(ev *Event)
}

type HandlerFunc func(ev *Event)

func (f HandlerFunc) HandleEvent(ev *Event) {
	f(ev)
}

type Dispatcher struct {
	handlers map[string][]Handler

	mu sync.RWMutex

	emitting chan *Event
	stop     chan struct{}
	stopOnce sync.Once
}

func NewDispatcher() *Dispatcher {
	return NewDispatcherLimit(8)
}

// NewDispatcherLimit creates a Dispatcher that buffers at most limit
// pending events. With a limit of 0, Emit blocks until the event is
// received by the dispatch loop.
func NewDispatcherLimit(limit int) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]Handler),
		emitting: make(chan *Event, limit),
		stop:     make(chan struct{}),
	}
}

func (d *Dispatcher) Loop() {
	for {
		select {
		case <-d.stop:
			return
		case ev := <-d.emitting:
			evn := ev.Name
			d.mu.RLock()
			handlers := append([]Handler{}, d.handlers[evn]...)
			d.mu.RUnlock()
			if len(handlers) == 0 {
				// nothing to do
				continue
			}
			for _, h := range handlers {
				h.HandleEvent(ev)
				if ev.handled {
					break
				}
			}
		}
	}
}

// Stop terminates the dispatch loop. Events emitted after Stop are
// silently discarded.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.stop)
	})
}

func (d *Dispatcher) Bind(name string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = append(d.handlers[name], handler)
}

func (d *Dispatcher) Unbind(name string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	hi := fmt.Sprintf("%v", handler)
	hs, ok := d.handlers[name]
	if !ok {
		logrus.Debugln("not unbinding anything for", name, hi)
		return
	}
	i := -1
	for j, h := range hs {
		if hi == fmt.Sprintf("%v", h) {
			i = j
			logrus.Debugln("unbinding", name, hi)
			break
		}
	}
	if i < 0 {
		logrus.Debugln("not unbinding anything for", name, hi)
		return
	}
	d.handlers[name] = append(hs[:i], hs[i+1:]...)
}

func (d *Dispatcher) Emit(name string, data map[string]interface{}) {
	select {
	case <-d.stop:
		// dispatcher is stopped, drop the event
	case d.emitting <- &Event{Name: name, Data: data}:
	}
}
