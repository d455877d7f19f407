// Package controller drives a single form through validation and a simulated
// submission. The controller never touches a document directly: every piece
// of UI it needs (field values, the submit button, per-field error slots, the
// success notice, the transient error cue) is injected as a small interface,
// and every delay goes through a Scheduler so tests can advance time by hand.
//
// A contact form runs:
//
//	Idle -> Pending (button disabled, pending label)
//	     -> Succeeded after Delay (label restored, fields cleared, notice shown)
//	     -> Idle after SuccessWindow (notice hidden)
//
// A newsletter form checks its email field alone. A bad address marks the
// input with a cue that clears after CueWindow; a good one runs
//
//	Idle -> Pending -> Succeeded (done label, email cleared) -> Idle after ConfirmWindow.
//
// UI handles are called with the controller's lock held and must not call
// back into the controller synchronously. Listeners registered with
// OnValidityChange and OnStateChange run after the lock is released.
package controller
