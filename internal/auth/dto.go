package auth

// RegisterRequest captures the signup payload.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterResponse echoes the registered address back to the client.
type RegisterResponse struct {
	Email string `json:"email"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
// Password length is not checked here; a short wrong password still goes
// through the credential comparison and fails as InvalidCredentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the token and the post-login destination.
type LoginResponse struct {
	AccessToken string `json:"accesstoken"`
	Redirect    string `json:"redirect"`
}

// OnboardingRequest is the profile payload collected after signup. The
// profession values (including the "Franchaise" spelling) and the
// instagram_Connected key are part of the client contract as shipped.
type OnboardingRequest struct {
	FirstName            string `json:"first_name" validate:"required,min=1,max=50"`
	LastName             string `json:"last_name" validate:"required,min=1,max=50"`
	Profession           string `json:"profession" validate:"required,oneof='Brand Owner' 'C Suit' 'Franchaise Owner' Freelancer"`
	CompanyName          string `json:"company_name" validate:"required,min=1,max=50"`
	Industry             string `json:"industry" validate:"required"`
	TeamSize             string `json:"team_size" validate:"required,oneof=1-10 11-50 51-250 251-1K 1K-5K 5K-10K 10K-50K 50K-100K 100K+"`
	LookingFor           string `json:"looking_for" validate:"required,oneof='Brand Management' 'Community Sharing' 'Analyze & Insights' 'Brand Strategy' 'Brand Reputation'"`
	IsOnboardingComplete *bool  `json:"is_onboarding_complete" validate:"required"`
	InstagramConnected   *bool  `json:"instagram_Connected" validate:"required"`
}
