package metrics

import "sync/atomic"

var warningsRaised int64
var warningsCleared int64
var eventsInjected int64

func IncWarningsRaised() { atomic.AddInt64(&warningsRaised, 1) }
func IncWarningsCleared() { atomic.AddInt64(&warningsCleared, 1) }
func IncEventsInjected() { atomic.AddInt64(&eventsInjected, 1) }

func Snapshot() map[string]int64 {
	return map[string]int64{
		"warnings_raised":  atomic.LoadInt64(&warningsRaised),
		"warnings_cleared": atomic.LoadInt64(&warningsCleared),
		"events_injected":  atomic.LoadInt64(&eventsInjected),
	}
}
