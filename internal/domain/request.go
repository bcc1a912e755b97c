package domain

import "time"

// Request is one classification triple as produced by a boundary. Content is
// still untagged; the dispatcher resolves its kind.
type Request struct {
	ID      string
	Origin  string
	Content ContentShape
	Status  Status
	User    User
}

// Decision is the audit record of one dispatched request.
type Decision struct {
	RequestID string
	Origin    string
	UserID    int64
	UserName  string
	Role      Role
	Kind      ContentKind // empty when authorization short-circuited
	Status    StatusTag
	Verdict   Verdict
	Message   string
	Reason    Reason
	DecidedAt time.Time
}

// NewDecision flattens an outcome into an audit record.
func NewDecision(req Request, kind ContentKind, outcome Outcome, at time.Time) Decision {
	d := Decision{
		RequestID: req.ID,
		Origin:    req.Origin,
		Kind:      kind,
		Verdict:   outcome.Verdict(),
		DecidedAt: at,
	}
	if req.User != nil {
		who := req.User.Identity()
		d.UserID, d.UserName, d.Role = who.ID, who.Name, req.User.Role()
	}
	if req.Status != nil {
		d.Status = req.Status.Tag()
	}
	switch o := outcome.(type) {
	case Allowed:
		d.Message = o.Message
	case Rejected:
		d.Reason = o.Reason
		d.Message = o.Detail
	default:
		panic(Unhandled("outcome", outcome))
	}
	return d
}
