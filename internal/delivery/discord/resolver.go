package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

type userFetcher interface {
	User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error)
}

// Resolver turns Discord user ids into display names, caching the answers.
type Resolver struct {
	session userFetcher
	cache   *IdentityCache
}

func NewResolver(session userFetcher, cache *IdentityCache) *Resolver {
	return &Resolver{session: session, cache: cache}
}

func (r *Resolver) Resolve(ctx context.Context, userID string) (string, error) {
	if name, ok := r.cache.Get(userID); ok {
		return name, nil
	}

	user, err := r.session.User(userID, discordgo.WithContext(ctx))
	if err != nil {
		r.cache.Delete(userID)
		return "", mapRESTError("fetch user", err)
	}

	name := userDisplayName(user)
	r.cache.Set(userID, name)
	return name, nil
}
