package decision

import "context"

// Resolution is the workflow state of a stored decision. Every decision
// starts pending; approve and reject are terminal.
type Resolution string

const (
	ResolutionPending  Resolution = "pending"
	ResolutionApproved Resolution = "approved"
	ResolutionRejected Resolution = "rejected"
)

// Record is a decision plus its workflow state as held by the store.
type Record struct {
	Decision   Decision   `json:"decision"`
	Resolution Resolution `json:"resolution"`
}

// Store persists decision records for later workflow actions.
//
// Finalize and Escalate fail with a conflict error when the record has
// already reached a terminal resolution, and with not-found when the
// decision was never stored.
type Store interface {
	Save(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (Record, error)
	Finalize(ctx context.Context, id string, res Resolution) (Record, error)
	Escalate(ctx context.Context, id, approver string) (Record, error)
}
