package audit

import "context"

// Store is the append-only sink owned by the platform. Implementations must
// make Append atomic and must not reorder entries for the same decision;
// concurrent appends for unrelated decisions have no ordering requirement.
type Store interface {
	// Append durably records the entry and assigns its sequence number.
	// The entry passed back via the return value carries the assigned Seq.
	Append(ctx context.Context, entry Entry) (Entry, error)

	// Query returns the page of entries matching the filter plus aggregate
	// counts over the whole filtered set. Read-only.
	Query(ctx context.Context, filter Filter, page Page) (*QueryResult, error)
}
