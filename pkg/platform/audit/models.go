// Package audit defines the append-only audit trail shared by the decision
// engine and the workflow handlers. Entries are immutable once appended;
// lifecycle changes to a decision are recorded as new entries referencing the
// same decision ID, never as updates.
package audit

import (
	"time"

	dErrors "arbiter/pkg/domain-errors"
)

// Action classifies what an audit entry records. The set is closed: adding an
// action means touching every exhaustive switch over it, which is the point.
type Action string

const (
	ActionEvaluate Action = "evaluate"
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionEscalate Action = "escalate"
)

// Valid reports whether a is one of the four known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionEvaluate, ActionApprove, ActionReject, ActionEscalate:
		return true
	}
	return false
}

// Entry is one immutable audit record. Seq is assigned by the store at append
// time and is monotonic within a store, preserving causal order for a decision.
type Entry struct {
	ID         string            `json:"id"`
	Seq        uint64            `json:"seq"`
	Timestamp  time.Time         `json:"timestamp"`
	DecisionID string            `json:"decisionId"`
	Module     string            `json:"module"`
	Action     Action            `json:"action"`
	Actor      string            `json:"actor"`
	Outcome    string            `json:"outcome"`
	Score      int               `json:"score"`
	RequestID  string            `json:"requestId,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Validate enforces the minimum shape for an appendable entry.
func (e Entry) Validate() error {
	if e.DecisionID == "" {
		return dErrors.New(dErrors.CodeValidation, "audit entry requires a decision id")
	}
	if !e.Action.Valid() {
		return dErrors.New(dErrors.CodeValidation, "audit entry action is unknown")
	}
	return nil
}

// Filter narrows a query. Zero values mean "no constraint".
type Filter struct {
	DecisionID string
	Module     string
	From       time.Time
	To         time.Time
}

// Matches applies the filter to a single entry.
func (f Filter) Matches(e Entry) bool {
	if f.DecisionID != "" && e.DecisionID != f.DecisionID {
		return false
	}
	if f.Module != "" && e.Module != f.Module {
		return false
	}
	if !f.From.IsZero() && e.Timestamp.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && e.Timestamp.After(f.To) {
		return false
	}
	return true
}

// Page bounds a query result. Pages are 1-based.
type Page struct {
	Number int
	Limit  int
}

// Normalize clamps pagination to usable values.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 500 {
		p.Limit = 500
	}
	return p
}

// Summary aggregates the filtered entries: one count per action plus the
// average overall score across evaluate entries.
type Summary struct {
	Evaluated int     `json:"evaluated"`
	Approved  int     `json:"approved"`
	Rejected  int     `json:"rejected"`
	Escalated int     `json:"escalated"`
	AvgScore  float64 `json:"avgScore"`
}

// QueryResult is the read-path payload: a page of entries plus aggregates over
// the whole filtered set.
type QueryResult struct {
	TotalRecords    int     `json:"totalRecords"`
	FilteredRecords int     `json:"filteredRecords"`
	Page            int     `json:"page"`
	Limit           int     `json:"limit"`
	Entries         []Entry `json:"entries"`
	Summary         Summary `json:"summary"`
}

// Summarize computes the aggregate view over a filtered entry set.
func Summarize(entries []Entry) Summary {
	var s Summary
	var scoreTotal int
	for _, e := range entries {
		switch e.Action {
		case ActionEvaluate:
			s.Evaluated++
			scoreTotal += e.Score
		case ActionApprove:
			s.Approved++
		case ActionReject:
			s.Rejected++
		case ActionEscalate:
			s.Escalated++
		}
	}
	if s.Evaluated > 0 {
		s.AvgScore = float64(scoreTotal) / float64(s.Evaluated)
	}
	return s
}
