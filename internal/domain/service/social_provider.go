package service

import (
	"context"

	"identity/internal/domain/entity"
)

// SocialProfile is the normalized identity returned by a social provider.
type SocialProfile struct {
	ExternalID    string              // Provider-specific user ID (e.g., Google's 'sub' claim)
	Email         string              // Mandatory; resolution fails without it
	FirstName     string              // Given name
	LastName      string              // Family name
	AvatarURL     string              // URL to the user's profile picture
	Provider      entity.ProviderType // The provider that asserted this profile
	EmailVerified bool                // Whether the provider vouches for the email
}

// SocialProfileFetcher fetches a verified profile for an opaque provider token.
// One implementation exists per provider.
type SocialProfileFetcher interface {
	// Provider returns the tag this fetcher serves.
	Provider() entity.ProviderType

	// FetchProfile exchanges a provider token for the user's profile.
	FetchProfile(ctx context.Context, token string) (*SocialProfile, error)
}
