package domain

import "time"

type HistoryAction string

const (
	HistoryActionAdded    HistoryAction = "Added"
	HistoryActionEdited   HistoryAction = "Edited"
	HistoryActionRemoved  HistoryAction = "Removed"
	HistoryActionBorrowed HistoryAction = "Borrowed"
	HistoryActionRejected HistoryAction = "Rejected"
	HistoryActionReturned HistoryAction = "Returned"
)

// HistoryEntry is an append-only audit record for a single asset. Entries
// are never edited or deleted after being written.
type HistoryEntry struct {
	ID        string        `json:"id" firestore:"-"`
	AssetID   string        `json:"asset_id" firestore:"assetId"`
	Action    HistoryAction `json:"action" firestore:"action"`
	Detail    string        `json:"detail" firestore:"detail"`
	Timestamp time.Time     `json:"timestamp" firestore:"timestamp,serverTimestamp"`
}

// TimelineEvent is one row of the merged asset timeline: either an explicit
// history entry or an event derived from a borrow request's timestamps
// (Requested/Approved/Rejected/Returned). Action is presentation vocabulary,
// not the stored HistoryAction set. A nil When means the source timestamp
// has not resolved yet (a pending server timestamp); such events sort
// first, as "just happened".
type TimelineEvent struct {
	Action string     `json:"action"`
	Detail string     `json:"detail"`
	When   *time.Time `json:"when,omitempty"`
}
