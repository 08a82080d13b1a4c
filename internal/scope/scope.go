package scope

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Scope is the set of representatives an identity may view. It is resolved
// once per request and consumed uniformly by every scoped query.
//
// IsAdmin means "no filter"; RepIDs is empty in that case. A zero Scope is
// the anonymous scope: consumers must return nothing, never everything.
type Scope struct {
	IsAdmin bool
	RepIDs  []snowflake.ID
}

func (s Scope) Empty() bool {
	return !s.IsAdmin && len(s.RepIDs) == 0
}

func (s Scope) Allows(repID snowflake.ID) bool {
	if s.IsAdmin {
		return true
	}
	for _, id := range s.RepIDs {
		if id == repID {
			return true
		}
	}
	return false
}

// Resolver maps a raw authenticated identity onto a Scope.
type Resolver interface {
	Resolve(ctx context.Context, rawIdentity string) (Scope, error)
}
