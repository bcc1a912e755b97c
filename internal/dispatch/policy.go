package dispatch

import (
	"fmt"
	"slices"
	"strings"

	"ContentDesk/internal/domain"
	"ContentDesk/internal/guard"
)

// Policy is the set of roles allowed to manage content.
type Policy struct {
	permitted []domain.Role
}

// DefaultPolicy permits editors and admins.
func DefaultPolicy() Policy {
	return NewPolicy(domain.RoleEditor, domain.RoleAdmin)
}

// NewPolicy permits exactly the given roles. Duplicates are dropped.
func NewPolicy(roles ...domain.Role) Policy {
	p := Policy{permitted: make([]domain.Role, 0, len(roles))}
	for _, r := range roles {
		if !slices.Contains(p.permitted, r) {
			p.permitted = append(p.permitted, r)
		}
	}
	return p
}

// Permits reports whether role may manage content.
func (p Policy) Permits(role domain.Role) bool {
	return slices.Contains(p.permitted, role)
}

// Roles lists the permitted roles in the order they were given.
func (p Policy) Roles() []domain.Role {
	return slices.Clone(p.permitted)
}

// Authorize returns a rejection for users outside the policy. A nil user, or
// anything else that is not a role variant, is never authorized.
func (p Policy) Authorize(u domain.User) (domain.Rejected, bool) {
	if role, ok := guard.RoleOf(u); ok && p.Permits(role) {
		return domain.Rejected{}, true
	}
	return domain.Rejected{Reason: domain.ReasonUnauthorized, Detail: p.detail()}, false
}

func (p Policy) detail() string {
	if len(p.permitted) == 0 {
		return "nobody can manage content"
	}
	names := make([]string, len(p.permitted))
	for i, r := range p.permitted {
		names[i] = string(r) + "s"
	}
	if len(names) == 1 {
		return fmt.Sprintf("only %s can manage content", names[0])
	}
	return fmt.Sprintf("only %s and %s can manage content",
		strings.Join(names[:len(names)-1], ", "), names[len(names)-1])
}
