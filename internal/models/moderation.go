package models

const (
	BulkActionApprove   = "approve"
	BulkActionUnapprove = "unapprove"
	BulkActionReject    = "reject"
)

// BulkModerationRequest applies one transition to many rows at once.
type BulkModerationRequest struct {
	Action string   `json:"action"`
	IDs    []string `json:"ids"`
}

// BulkModerationResult reports partial success: ids that were not found or
// already carried the target state are skipped, never aborting the batch.
type BulkModerationResult struct {
	Succeeded []string `json:"succeeded"`
	Skipped   []string `json:"skipped"`
}

// ReorderRequest carries the full ordered id list from a drag-and-drop drop.
// Featured, when set, also flips the featured flag for every listed id so a
// cross-group drag is one atomic operation.
type ReorderRequest struct {
	OrderedIDs []string `json:"orderedIds"`
	Featured   *bool    `json:"featured"`
}

// PendingPage is one page of the moderation queue.
type PendingPage struct {
	Items      any   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
}
