package domain

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "Pending"
	RequestStatusApproved RequestStatus = "Approved"
	RequestStatusRejected RequestStatus = "Rejected"
	RequestStatusReturned RequestStatus = "Returned"
)

// IsTerminal reports whether no further transition is permitted.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusRejected || s == RequestStatusReturned
}

// DateLayout is the calendar-date format used for startDate/endDate.
// Ranges are inclusive on both ends.
const DateLayout = "2006-01-02"

// BorrowRequest is a request to borrow an asset for an inclusive date range.
type BorrowRequest struct {
	ID          string        `json:"id" firestore:"-"`
	AssetID     string        `json:"asset_id" firestore:"assetId"`
	RequestedBy string        `json:"requested_by" firestore:"requestedBy"`
	StartDate   string        `json:"start_date" firestore:"startDate"`
	EndDate     string        `json:"end_date" firestore:"endDate"`
	Reason      string        `json:"reason" firestore:"reason"`
	Status      RequestStatus `json:"status" firestore:"status"`
	AdminNote   string        `json:"admin_note,omitempty" firestore:"adminNote"`
	CreatedAt   time.Time     `json:"created_at" firestore:"createdAt,serverTimestamp"`
	ReviewedAt  *time.Time    `json:"reviewed_at,omitempty" firestore:"reviewedAt"`
	ReturnedAt  *time.Time    `json:"returned_at,omitempty" firestore:"returnedAt"`
}

// allowedTransitions is the borrow-request state machine. Rejected and
// Returned are terminal.
var allowedTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusApproved: {RequestStatusPending},
	RequestStatusRejected: {RequestStatusPending, RequestStatusApproved},
	RequestStatusReturned: {RequestStatusApproved},
}

// AllowedFrom returns the set of states a request may be in for a
// transition into `to`.
func AllowedFrom(to RequestStatus) []RequestStatus {
	return allowedTransitions[to]
}

// CanTransition reports whether from → to is a legal transition.
func CanTransition(from, to RequestStatus) bool {
	for _, s := range allowedTransitions[to] {
		if s == from {
			return true
		}
	}
	return false
}

// DatesOverlap is the inclusive interval test used for availability checks:
// conflict iff newStart <= existingEnd AND newEnd >= existingStart.
// Dates are calendar-date strings in DateLayout; a malformed date on either
// side is treated as non-overlapping rather than blocking the request.
func DatesOverlap(newStart, newEnd, existingStart, existingEnd string) bool {
	ns, err1 := time.Parse(DateLayout, newStart)
	ne, err2 := time.Parse(DateLayout, newEnd)
	es, err3 := time.Parse(DateLayout, existingStart)
	ee, err4 := time.Parse(DateLayout, existingEnd)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return false
	}
	return !ns.After(ee) && !ne.Before(es)
}
