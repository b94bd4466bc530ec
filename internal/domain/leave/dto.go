package leave

import "time"

type ApplyRequest struct {
	Type      string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

type DecisionRequest struct {
	Decision string `json:"decision"`
}

type Response struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	UserFullName *string `json:"user_full_name,omitempty"`
	Type         Type    `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Days         int     `json:"days"`
	Reason       string  `json:"reason"`
	Status       Status  `json:"status"`
	DecidedBy    *string `json:"decided_by,omitempty"`
	DecidedAt    *string `json:"decided_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type BalanceEntry struct {
	Type      Type `json:"leave_type"`
	Allowance int  `json:"allowance"`
	Used      int  `json:"used"`
	Remaining int  `json:"remaining"`
}

func ToResponse(req *Request) Response {
	resp := Response{
		ID:           req.ID,
		UserID:       req.UserID,
		UserFullName: req.UserFullName,
		Type:         req.Type,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Days:         req.Days,
		Reason:       req.Reason,
		Status:       req.Status,
		DecidedBy:    req.DecidedBy,
		CreatedAt:    req.CreatedAt.Format(time.RFC3339),
	}
	if req.DecidedAt != nil {
		decidedAt := req.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &decidedAt
	}
	return resp
}

func ToResponses(reqs []Request) []Response {
	resps := make([]Response, 0, len(reqs))
	for i := range reqs {
		resps = append(resps, ToResponse(&reqs[i]))
	}
	return resps
}
