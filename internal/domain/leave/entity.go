package leave

import "time"

type Type string

const (
	TypeSick      Type = "SICK"
	TypeCasual    Type = "CASUAL"
	TypeEarned    Type = "EARNED"
	TypeLossOfPay Type = "LOSS_OF_PAY"
	TypeMaternity Type = "MATERNITY"
	TypePaternity Type = "PATERNITY"
)

func (t Type) Valid() bool {
	switch t {
	case TypeSick, TypeCasual, TypeEarned, TypeLossOfPay, TypeMaternity, TypePaternity:
		return true
	}
	return false
}

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

type Request struct {
	ID           string
	UserID       string
	Type         Type
	StartDate    string
	EndDate      string
	Days         int
	Reason       string
	Status       Status
	DecidedBy    *string
	DecidedAt    *time.Time
	CreatedAt    time.Time
	UserFullName *string
}

type Decision string

const (
	DecisionApproved Decision = "APPROVED"
	DecisionRejected Decision = "REJECTED"
)

func (d Decision) Valid() bool {
	return d == DecisionApproved || d == DecisionRejected
}

// CasualLeaveMaxDays caps a single casual leave request.
const CasualLeaveMaxDays = 3

// Annual allowances per leave type, in days. Types missing from the map
// carry no quota and report an unlimited balance.
var AnnualAllowance = map[Type]int{
	TypeSick:      12,
	TypeCasual:    12,
	TypeEarned:    15,
	TypeMaternity: 182,
	TypePaternity: 15,
}
