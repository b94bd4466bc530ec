package leave

import "context"

type Service interface {
	Apply(ctx context.Context, userID string, req *ApplyRequest) (*Request, error)
	Decide(ctx context.Context, adminID, leaveID string, decision Decision) (*Request, error)
	Cancel(ctx context.Context, userID, leaveID string) (*Request, error)
	MyLeaves(ctx context.Context, userID string) ([]Request, error)
	All(ctx context.Context) ([]Request, error)
	Pending(ctx context.Context) ([]Request, error)
	Balance(ctx context.Context, userID string) ([]BalanceEntry, error)
}
