package services

import (
	"github.com/openedu/conductor-api/internal/authz"
	"github.com/openedu/conductor-api/internal/repository"
)

// actorResolver loads the requesting user for every privileged call.
// Nothing is cached between requests.
type actorResolver struct {
	userRepo repository.UserRepository
}

func (r actorResolver) resolve(uuid string) (authz.Actor, error) {
	user, err := r.userRepo.FindByUUID(uuid)
	if err != nil {
		return authz.Actor{}, notFoundOr(err, ErrUserNotFound, "find user")
	}
	return authz.Actor{UUID: user.UUID, Admin: user.IsAdmin()}, nil
}
