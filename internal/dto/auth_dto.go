package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// TokenPair is issued by POST /token/. Refresh is empty on /token/refresh/
// responses, which only rotate the access credential.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type UserResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
