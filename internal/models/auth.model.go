package models

// TokenPair is the response of the token and token-refresh endpoints.
type TokenPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}
