package attendance

import "context"

// Service defines business logic for punch and late-request operations.
type Service interface {
	// PunchIn opens the day's attendance record for the acting employee,
	// subject to the clock policy and the late-request gate.
	PunchIn(ctx context.Context, userID string) (RecordResponse, error)

	// PunchOut closes the day's open record and derives the final status.
	PunchOut(ctx context.Context, userID string, req PunchOutRequest) (RecordResponse, error)

	// SubmitLateRequest files a PENDING late request for today.
	SubmitLateRequest(ctx context.Context, userID string, req LateRequestSubmission) (LateRequestResponse, error)

	// DecideLateRequest applies an admin verdict to a pending late request.
	DecideLateRequest(ctx context.Context, adminID, requestID string, decision Decision) (LateRequestResponse, error)

	// MyLateRequest returns today's late request for the employee, nil when none.
	MyLateRequest(ctx context.Context, userID string) (*LateRequestResponse, error)

	// PendingLateRequests lists undecided requests (admin view).
	PendingLateRequests(ctx context.Context) ([]LateRequestResponse, error)

	// MyHistory lists the employee's attendance records, newest first.
	MyHistory(ctx context.Context, userID string) ([]RecordResponse, error)

	// All lists every attendance record (admin view).
	All(ctx context.Context) ([]RecordResponse, error)

	// Recent lists the latest punches across all employees (admin view).
	Recent(ctx context.Context) ([]RecordResponse, error)
}
