package models

// UserProfile is the single local user. Its absence means the application
// is still in onboarding state.
type UserProfile struct {
	Name      string `json:"name"`
	Onboarded bool   `json:"onboarded"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}
