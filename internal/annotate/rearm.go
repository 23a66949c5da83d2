package annotate

import "time"

// RearmDelay is how long a tool stays disarmed after an undo.
const RearmDelay = 200 * time.Millisecond

// Rearm is a cancellable deadline that restores a tool once it expires. It
// holds no goroutine; the owner polls it with the current time.
type Rearm struct {
	tool    Tool
	due     time.Time
	pending bool
}

// Schedule arms the timer to restore t at the given time, replacing any
// earlier schedule.
func (r *Rearm) Schedule(t Tool, at time.Time) {
	r.tool = t
	r.due = at
	r.pending = true
}

// Cancel drops the pending restore and reports whether one was pending.
func (r *Rearm) Cancel() bool {
	was := r.pending
	r.pending = false
	r.tool = ToolNone
	return was
}

// Pending reports whether a restore is scheduled.
func (r *Rearm) Pending() bool { return r.pending }

// Deadline returns when the pending restore fires.
func (r *Rearm) Deadline() (time.Time, bool) { return r.due, r.pending }

// Fire returns the tool to restore when the deadline has passed at now,
// clearing the schedule.
func (r *Rearm) Fire(now time.Time) (Tool, bool) {
	if !r.pending || now.Before(r.due) {
		return ToolNone, false
	}
	t := r.tool
	r.Cancel()
	return t, true
}
