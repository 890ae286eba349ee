// Package snapshot holds the process-wide immutable rule set. The snapshot is
// built once at startup (and rebuilt on admin writes or file changes) and
// shared by reference across all request handlers; readers never observe
// partial state because the swap is a single atomic pointer store.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/licomply/licomply/internal/rules"
)

// Snapshot is an immutable view of the loaded rule set. Rules must not be
// mutated after the snapshot is published.
type Snapshot struct {
	ETag       string       `json:"etag"`
	SourceFile string       `json:"sourceFile,omitempty"`
	Rules      []rules.Rule `json:"rules"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

var current atomic.Pointer[Snapshot]

// Load returns the current snapshot. Before the first Update it returns a
// valid empty snapshot: zero matches, not an error.
func Load() *Snapshot {
	if s := current.Load(); s != nil {
		return s
	}
	return &Snapshot{Rules: []rules.Rule{}, UpdatedAt: time.Now().UTC()}
}

// Update publishes a new snapshot and notifies stream subscribers.
func Update(s *Snapshot) {
	current.Store(s)
	publishUpdate(s)
}

// Build constructs a snapshot from loaded rules and stamps it with a weak
// ETag derived from the rule content.
func Build(sourceFile string, rs []rules.Rule) *Snapshot {
	if rs == nil {
		rs = []rules.Rule{}
	}
	blob, _ := json.Marshal(rs)
	sum := sha256.Sum256(blob)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return &Snapshot{
		ETag:       etag,
		SourceFile: sourceFile,
		Rules:      rs,
		UpdatedAt:  time.Now().UTC(),
	}
}
