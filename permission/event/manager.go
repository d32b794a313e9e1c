package event

import (
	"reflect"
	"sort"
	"sync"

	"github.com/go-logr/logr"
	"github.com/rs/xid"
)

// HandlerFunc handles one delivered Event.
type HandlerFunc func(e Event)

// Manager is an async, in-process Sink: EmitAsync hands the event to a new
// goroutine and returns immediately, satisfying the "must not block the
// caller" rule in §5. It also doubles as a subscribable pub/sub hub so a
// program wiring this core together can react to lifecycle events without
// polling the holder store. Adapted from the teacher's
// pkg/runtime/event.Manager, generalized from Gate's proxy events to this
// package's four event types.
type Manager struct {
	log               logr.Logger
	activeSubscribers sync.WaitGroup

	mu          sync.RWMutex
	subscribers map[reflect.Type][]*subscriber
}

type subscriber struct {
	priority int
	fn       HandlerFunc
}

var _ Sink = (*Manager)(nil)

// NewManager returns a Manager that logs subscriber panics via log.
func NewManager(log logr.Logger) *Manager {
	return &Manager{log: log, subscribers: map[reflect.Type][]*subscriber{}}
}

// Subscribe registers fn for events with the same concrete type as
// sample (e.g. PermissionNodeSet{}). Handlers run in priority order,
// highest first. The returned func unsubscribes, and is safe to call more
// than once.
func (m *Manager) Subscribe(sample Event, priority int, fn HandlerFunc) (unsubscribe func()) {
	eType := reflect.TypeOf(sample)

	m.mu.Lock()
	defer m.mu.Unlock()

	sub := &subscriber{priority: priority, fn: fn}
	list := append(m.subscribers[eType], sub)
	sort.SliceStable(list, func(i, j int) bool {
		return list[j].priority < list[i].priority
	})
	m.subscribers[eType] = list

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			list, ok := m.subscribers[eType]
			if !ok {
				return
			}
			for i, s := range list {
				if s != sub {
					continue
				}
				copy(list[i:], list[i+1:])
				list[len(list)-1] = nil
				m.subscribers[eType] = list[:len(list)-1]
				return
			}
		})
	}
}

// EmitAsync fires e to subscribers in a new goroutine and returns
// immediately. Each dispatched event gets a correlation id (rs/xid) that is
// logged at V(1) with the event type; the id is not passed to subscribers.
// Events with no subscribers return before an id is logged.
func (m *Manager) EmitAsync(e Event) {
	id := xid.New()
	eType := reflect.TypeOf(e)

	m.mu.RLock()
	list := m.subscribers[eType]
	m.mu.RUnlock()

	if len(list) == 0 {
		return
	}

	m.activeSubscribers.Add(1)
	go func() {
		defer m.activeSubscribers.Done()
		if m.log.V(1).Enabled() {
			m.log.V(1).Info("emitting event", "id", id.String(), "type", eType.String())
		}
		for _, sub := range list {
			m.dispatch(sub, e, eType)
		}
	}()
}

func (m *Manager) dispatch(sub *subscriber, e Event, eType reflect.Type) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error(nil, "recovered from panic in event subscriber",
				"panic", r, "eventType", eType.String(), "priority", sub.priority)
		}
	}()
	sub.fn(e)
}

// Wait blocks until every in-flight EmitAsync goroutine has finished
// dispatching. Intended for tests and graceful shutdown, never for the
// resolver's own call path.
func (m *Manager) Wait() {
	m.activeSubscribers.Wait()
}
