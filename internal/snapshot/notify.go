package snapshot

import "sync"

// Change describes a published snapshot swap, as delivered to stream
// subscribers.
type Change struct {
	ETag      string `json:"etag"`
	RuleCount int    `json:"ruleCount"`
}

var (
	mu   sync.Mutex
	subs = make(map[chan Change]struct{})
)

// Subscribe registers a listener and returns its channel and an unsubscribe
// func. The channel is buffered with depth 1; slow listeners miss
// intermediate changes instead of blocking publishers.
func Subscribe() (<-chan Change, func()) {
	ch := make(chan Change, 1)
	mu.Lock()
	subs[ch] = struct{}{}
	mu.Unlock()

	unsub := func() {
		mu.Lock()
		delete(subs, ch)
		close(ch)
		mu.Unlock()
	}
	return ch, unsub
}

func publishUpdate(s *Snapshot) {
	change := Change{ETag: s.ETag, RuleCount: len(s.Rules)}
	mu.Lock()
	for ch := range subs {
		select {
		case ch <- change:
		default:
		}
	}
	mu.Unlock()
}
