package registry

import (
	"sort"
	"sync"
	"time"
)

// ExampleRegistry holds every example recorded while building the site.
type ExampleRegistry struct {
	examples map[string]*ExampleInfo
	mutex    sync.RWMutex
	watchers []chan ExampleEvent
}

// ExampleInfo describes one recorded example.
type ExampleInfo struct {
	// ID is "<page>-<index>", unique across the site.
	ID    string `json:"id" yaml:"id"`
	Page  string `json:"page" yaml:"page"`
	Index int    `json:"index" yaml:"index"`
	// Title is the markdown description or, for entity examples, the
	// entity's name.
	Title  string `json:"title" yaml:"title"`
	Entity string `json:"entity,omitempty" yaml:"entity,omitempty"`
	File   string `json:"file" yaml:"file"`
	Line   int    `json:"line" yaml:"line"`
	Begin  int    `json:"begin" yaml:"begin"`
	End    int    `json:"end" yaml:"end"`
	// Code is the fenced snippet shown in the code column.
	Code     string    `json:"code" yaml:"code"`
	Widgets  []string  `json:"widgets,omitempty" yaml:"widgets,omitempty"`
	Recorded time.Time `json:"recorded" yaml:"recorded"`
}

// ExampleEvent represents a change in the registry.
type ExampleEvent struct {
	Type      EventType
	Example   *ExampleInfo
	Timestamp time.Time
}

// EventType represents the type of registry event.
type EventType int

const (
	EventTypeAdded EventType = iota
	EventTypeUpdated
	EventTypeRemoved
)

func (t EventType) String() string {
	switch t {
	case EventTypeAdded:
		return "added"
	case EventTypeUpdated:
		return "updated"
	case EventTypeRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// NewExampleRegistry creates an empty registry.
func NewExampleRegistry() *ExampleRegistry {
	return &ExampleRegistry{
		examples: make(map[string]*ExampleInfo),
		watchers: make([]chan ExampleEvent, 0),
	}
}

// Register adds or replaces an example, keyed by its ID.
func (r *ExampleRegistry) Register(example *ExampleInfo) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	eventType := EventTypeAdded
	if _, exists := r.examples[example.ID]; exists {
		eventType = EventTypeUpdated
	}
	r.examples[example.ID] = example
	r.notify(eventType, example)
}

// Get retrieves an example by ID.
func (r *ExampleRegistry) Get(id string) (*ExampleInfo, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	example, exists := r.examples[id]
	return example, exists
}

// GetAll returns all examples ordered by page, then by position on the page.
func (r *ExampleRegistry) GetAll() []*ExampleInfo {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]*ExampleInfo, 0, len(r.examples))
	for _, example := range r.examples {
		result = append(result, example)
	}
	sortExamples(result)
	return result
}

// ByPage returns the examples of one page in recording order.
func (r *ExampleRegistry) ByPage(page string) []*ExampleInfo {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*ExampleInfo
	for _, example := range r.examples {
		if example.Page == page {
			result = append(result, example)
		}
	}
	sortExamples(result)
	return result
}

// Remove removes an example from the registry.
func (r *ExampleRegistry) Remove(id string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	example, exists := r.examples[id]
	if !exists {
		return
	}
	delete(r.examples, id)
	r.notify(EventTypeRemoved, example)
}

// RemovePage drops every example of a page, as done before the page is
// rebuilt.
func (r *ExampleRegistry) RemovePage(page string) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	removed := 0
	for id, example := range r.examples {
		if example.Page != page {
			continue
		}
		delete(r.examples, id)
		r.notify(EventTypeRemoved, example)
		removed++
	}
	return removed
}

// Reset empties the registry without notifying watchers.
func (r *ExampleRegistry) Reset() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.examples = make(map[string]*ExampleInfo)
}

// Watch returns a channel that receives registry events.
func (r *ExampleRegistry) Watch() <-chan ExampleEvent {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	ch := make(chan ExampleEvent, 100)
	r.watchers = append(r.watchers, ch)
	return ch
}

// UnWatch removes a watcher channel and closes it.
func (r *ExampleRegistry) UnWatch(ch <-chan ExampleEvent) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, watcher := range r.watchers {
		if watcher == ch {
			close(watcher)
			r.watchers = append(r.watchers[:i], r.watchers[i+1:]...)
			break
		}
	}
}

// Count returns the number of registered examples.
func (r *ExampleRegistry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.examples)
}

// notify must be called with the write lock held.
func (r *ExampleRegistry) notify(eventType EventType, example *ExampleInfo) {
	event := ExampleEvent{
		Type:      eventType,
		Example:   example,
		Timestamp: time.Now(),
	}
	for _, watcher := range r.watchers {
		select {
		case watcher <- event:
		default:
			// Skip if channel is full
		}
	}
}

func sortExamples(examples []*ExampleInfo) {
	sort.Slice(examples, func(i, j int) bool {
		if examples[i].Page != examples[j].Page {
			return examples[i].Page < examples[j].Page
		}
		return examples[i].Index < examples[j].Index
	})
}
