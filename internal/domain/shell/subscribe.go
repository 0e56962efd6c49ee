package shell

import (
	"context"
	"sync"
)

// Subscribe returns a channel carrying the current snapshot followed by one
// snapshot per change. A slow reader only ever sees the newest snapshot.
// cancel detaches and closes the channel; it is safe to call more than once.
func (s *Shell) Subscribe(ctx context.Context) (<-chan State, func()) {
	ch := make(chan State, 1)

	s.mu.Lock()
	s.subsMu.Lock()
	if s.closed {
		s.subsMu.Unlock()
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	s.nextSub++
	id := s.nextSub
	s.subs[id] = ch
	ch <- s.state(ctx)
	s.subsMu.Unlock()
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subsMu.Lock()
			defer s.subsMu.Unlock()
			if _, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(ch)
			}
		})
	}
}

// Close releases the auto-hide timer and closes every subscription
func (s *Shell) Close() {
	s.chrome.Close()

	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// publishCurrent publishes from the chrome's timer
func (s *Shell) publishCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publish(s.state(context.Background()))
}

// publish replaces whatever a subscriber has not read yet with st
func (s *Shell) publish(st State) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- st:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		ch <- st
	}
}
