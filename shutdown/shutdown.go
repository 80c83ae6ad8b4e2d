// Package shutdown coordinates graceful teardown of long-lived resources:
// headless browsers, sqlite caches, in-flight generation tasks.
package shutdown

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"github.com/flanksource/commons/logger"
)

const (
	// PriorityTasks stops in-flight generation first.
	PriorityTasks = 0
	// PriorityDefault is used by AddHook.
	PriorityDefault = 100
	// PriorityRenderers stops rendering engines (browsers) after tasks drain.
	PriorityRenderers = 200
	// PriorityCache closes caches and databases last.
	PriorityCache = 300
)

type hook struct {
	label    string
	priority int
	fn       func()
}

var (
	mu    sync.Mutex
	hooks []hook
	once  sync.Once
)

// AddHook registers a shutdown hook with default priority.
func AddHook(label string, fn func()) {
	AddHookWithPriority(label, PriorityDefault, fn)
}

// AddHookWithPriority registers a shutdown hook. Hooks run in ascending
// priority order; within a priority, registration order is preserved.
func AddHookWithPriority(label string, priority int, fn func()) {
	mu.Lock()
	defer mu.Unlock()
	hooks = append(hooks, hook{label: label, priority: priority, fn: fn})
}

// Shutdown executes all registered hooks. A panicking hook does not prevent
// the remaining hooks from running.
func Shutdown() {
	mu.Lock()
	pending := hooks
	hooks = nil
	mu.Unlock()

	if len(pending) == 0 {
		return
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].priority < pending[j].priority
	})

	logger.Debugf("executing %d shutdown hooks", len(pending))
	for _, h := range pending {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Errorf("panic in shutdown hook %s: %v", h.label, r)
				}
			}()
			logger.Debugf("shutdown hook: %s (priority=%d)", h.label, h.priority)
			h.fn()
		}()
	}
}

// WaitForSignal blocks until SIGINT/SIGTERM, runs the hooks and exits.
// A second signal forces immediate exit.
func WaitForSignal() {
	once.Do(func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		sig := <-sigChan
		fmt.Fprintf(os.Stderr, "\nreceived %s - shutting down, Ctrl+C again to force exit\n", sig)

		go func() {
			<-sigChan
			os.Exit(1)
		}()

		Shutdown()
		os.Exit(0)
	})
}
