package scope

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	directorydomain "github.com/medforce/fieldtrack/internal/directory/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	Directory directorydomain.Service
}

type Service struct {
	log       *zap.Logger
	directory directorydomain.Service
}

func New(p Params) Resolver {
	return &Service{
		log:       p.Log.Named("scope.resolver"),
		directory: p.Directory,
	}
}

// Resolve maps an identity to its visible representatives. Administrators get
// the unfiltered scope; managers get every representative assigned to them
// (matched by email or display name) plus themselves, since managers can hold
// personal targets too; everyone else sees only themselves. Anonymous or
// unknown identities get the empty scope.
func (s *Service) Resolve(ctx context.Context, rawIdentity string) (Scope, error) {
	rawIdentity = strings.TrimSpace(rawIdentity)
	if rawIdentity == "" {
		return Scope{}, nil
	}

	user, err := s.directory.ResolveIdentity(ctx, rawIdentity)
	if err != nil {
		return Scope{}, err
	}
	if user == nil {
		s.log.Debug("identity not found in directory", zap.String("identity", rawIdentity))
		return Scope{}, nil
	}

	if user.IsAdmin() {
		return Scope{IsAdmin: true}, nil
	}

	seen := map[snowflake.ID]struct{}{user.ID: {}}
	ids := []snowflake.ID{user.ID}

	for _, identity := range managerIdentities(rawIdentity, user) {
		reps, err := s.directory.ManagedRepresentatives(ctx, identity)
		if err != nil {
			return Scope{}, err
		}
		for _, rep := range reps {
			if _, ok := seen[rep.ID]; ok {
				continue
			}
			seen[rep.ID] = struct{}{}
			ids = append(ids, rep.ID)
		}
	}

	return Scope{RepIDs: ids}, nil
}

// managerIdentities lists the strings under which representatives may be
// assigned to this user. Assignment records are inconsistently keyed by
// either the manager's login or display name.
func managerIdentities(rawIdentity string, user *directorydomain.User) []string {
	identities := []string{rawIdentity}
	if !strings.EqualFold(user.Name, rawIdentity) {
		identities = append(identities, user.Name)
	}
	if !strings.EqualFold(user.Email, rawIdentity) && !strings.EqualFold(user.Email, user.Name) {
		identities = append(identities, user.Email)
	}
	return identities
}
