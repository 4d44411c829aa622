package log

import "sync"

// A Context adds fields to every emitted log entry.
type Context interface {
	AddLogContext(entry *EntryZ)
}

var (
	ctxmu    sync.RWMutex
	contexts []Context
)

// AddContext registers c. The returned function unregisters it.
func AddContext(c Context) (remove func()) {
	ctxmu.Lock()
	contexts = append(contexts, c)
	ctxmu.Unlock()

	return func() {
		ctxmu.Lock()
		defer ctxmu.Unlock()
		for i := range contexts {
			if contexts[i] == c {
				contexts = append(contexts[:i], contexts[i+1:]...)
				return
			}
		}
	}
}

func addContexts(e *EntryZ) {
	ctxmu.RLock()
	for _, c := range contexts {
		c.AddLogContext(e)
	}
	ctxmu.RUnlock()
}
