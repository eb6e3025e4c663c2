package usecasetest

import (
	"sync"

	"github.com/google/uuid"
)

type Published struct {
	Recipients []uuid.UUID
	Event      string
	Data       any
}

// Recorder запоминает опубликованные события.
type Recorder struct {
	mu     sync.Mutex
	Events []Published
}

func (r *Recorder) Publish(recipients []uuid.UUID, event string, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, Published{Recipients: recipients, Event: event, Data: data})
}

// Names возвращает имена событий в порядке публикации.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.Events))
	for i, e := range r.Events {
		names[i] = e.Event
	}
	return names
}
