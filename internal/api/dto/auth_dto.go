package dto

// LoginRequest payload for login.
type LoginRequest struct {
	LoginID  string `json:"loginId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries a refresh token for refresh and logout.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// SignupRequest payload for account registration.
type SignupRequest struct {
	LoginID  string `json:"loginId" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=WHOLESALER RETAILER AGENT"`
}

// TokenResponse is returned by login and refresh.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// SignupResponse describes the created account.
type SignupResponse struct {
	SubjectID string `json:"uuid"`
	LoginID   string `json:"loginId"`
	Role      string `json:"role"`
}
