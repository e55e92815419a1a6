//go:build property

package watcher

import (
	"sort"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestDebouncerProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(9876)
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	// Property: one batch holds each changed path exactly once, sorted
	properties.Property("batch is deduplicated and sorted", prop.ForAll(
		func(paths []string) bool {
			if len(paths) == 0 {
				return true
			}
			d := NewDebouncer(time.Hour)
			for _, p := range paths {
				d.addEvent(ChangeEvent{Type: EventTypeModified, Path: p})
			}
			d.stop()
			d.flush()

			events := <-d.output
			unique := make(map[string]bool)
			for _, p := range paths {
				unique[p] = true
			}
			if len(events) != len(unique) {
				return false
			}
			return sort.SliceIsSorted(events, func(i, j int) bool { return events[i].Path < events[j].Path })
		},
		gen.SliceOf(gen.OneConstOf("a.go", "b.go", "README.md", "c/d.go")),
	))

	// Property: the last event type for a path wins
	properties.Property("last event wins", prop.ForAll(
		func(types []int) bool {
			if len(types) == 0 {
				return true
			}
			d := NewDebouncer(time.Hour)
			for _, ty := range types {
				d.addEvent(ChangeEvent{Type: EventType(ty), Path: "x.go"})
			}
			d.stop()
			d.flush()

			events := <-d.output
			return len(events) == 1 && events[0].Type == EventType(types[len(types)-1])
		},
		gen.SliceOf(gen.IntRange(0, 3)),
	))

	properties.TestingRun(t)
}
