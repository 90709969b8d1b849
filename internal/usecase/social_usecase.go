package usecase

import (
	"context"

	"identity/internal/domain/entity"
	"identity/internal/domain/service"
)

// SocialIdentityResolver turns provider tokens into local accounts.
type SocialIdentityResolver interface {
	// Resolve fetches a profile from the provider registered for the tag.
	Resolve(ctx context.Context, provider entity.ProviderType, token string) (*service.SocialProfile, error)

	// LinkOrCreate applies the merge policy: one email identifies one account.
	// The boolean reports whether a new account was created.
	LinkOrCreate(ctx context.Context, profile *service.SocialProfile) (*entity.Account, bool, error)
}
