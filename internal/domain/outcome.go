package domain

import "fmt"

// Verdict is the discriminant of an Outcome.
type Verdict string

const (
	VerdictAllowed  Verdict = "allowed"
	VerdictRejected Verdict = "rejected"
)

// Reason explains a rejection.
type Reason string

const ReasonUnauthorized Reason = "Unauthorized"

// Outcome is the result of one dispatch: Allowed or Rejected. Both variants
// are comparable, so identical dispatches compare equal with ==.
type Outcome interface {
	Verdict() Verdict
	fmt.Stringer
	outcome()
}

// Allowed carries the composed decision message.
type Allowed struct {
	Message string
}

// Rejected carries why the dispatch refused to describe the content.
type Rejected struct {
	Reason Reason
	Detail string
}

func (Allowed) Verdict() Verdict  { return VerdictAllowed }
func (Rejected) Verdict() Verdict { return VerdictRejected }

func (a Allowed) String() string { return a.Message }

func (r Rejected) String() string {
	if r.Detail == "" {
		return string(r.Reason)
	}
	return fmt.Sprintf("%s: %s", r.Reason, r.Detail)
}

func (Allowed) outcome()  {}
func (Rejected) outcome() {}
