package history

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Opener opens a store at path that keeps at most limit records
type Opener func(path string, limit int) (Store, error)

var (
	openersMu sync.RWMutex
	openers   = make(map[string]Opener)
)

// Register makes a backend available to Open for the given file extensions,
// e.g. ".db". Backends register themselves from init; registering the same
// extension twice panics.
func Register(opener Opener, exts ...string) {
	openersMu.Lock()
	defer openersMu.Unlock()
	if opener == nil {
		panic("history: Register opener is nil")
	}
	for _, ext := range exts {
		ext = strings.ToLower(ext)
		if _, dup := openers[ext]; dup {
			panic(fmt.Sprintf("history: Register called twice for %s", ext))
		}
		openers[ext] = opener
	}
}

// Open picks a store by path's extension. Paths with no registered backend
// get a JSON FileStore.
func Open(path string, limit int) (Store, error) {
	openersMu.RLock()
	opener, ok := openers[strings.ToLower(filepath.Ext(path))]
	openersMu.RUnlock()
	if ok {
		return opener(path, limit)
	}
	return NewFileStore(path, limit)
}
