package models

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from VisitAction
		to   VisitAction
		want bool
	}{
		{"pending to scheduled", ActionPending, ActionScheduled, true},
		{"pending to completed", ActionPending, ActionCompleted, true},
		{"pending to cancelled", ActionPending, ActionCancelled, true},
		{"reschedule", ActionScheduled, ActionScheduled, true},
		{"scheduled to completed", ActionScheduled, ActionCompleted, true},
		{"completed is terminal", ActionCompleted, ActionScheduled, false},
		{"completed to cancelled", ActionCompleted, ActionCancelled, false},
		{"cancelled is terminal", ActionCancelled, ActionCompleted, false},
		{"nothing moves back to pending", ActionScheduled, ActionPending, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestAllowedTransitionsUnknownState(t *testing.T) {
	// Legacy rows may carry dispositions from before the state machine;
	// they are treated as open.
	got := AllowedTransitions(VisitAction("Open"))
	if len(got) != 3 {
		t.Errorf("AllowedTransitions(Open) = %v, want all three targets", got)
	}
}
