package controller

import "time"

// Scheduler runs fn once after d has elapsed.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// SchedulerFunc adapts a function into a Scheduler.
type SchedulerFunc func(d time.Duration, fn func())

// After calls f.
func (f SchedulerFunc) After(d time.Duration, fn func()) {
	f(d, fn)
}

// TimerScheduler schedules continuations on real timers.
type TimerScheduler struct{}

// After starts a timer; fn runs on the timer's goroutine.
func (TimerScheduler) After(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// Immediate runs continuations synchronously, ignoring the delay. Request
// handlers use it to drive a whole submission within one call.
var Immediate Scheduler = SchedulerFunc(func(_ time.Duration, fn func()) { fn() })
