package models

// UserProfile is the authenticated user as returned by POST /users/me.
type UserProfile struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Expertise     string `json:"expertise"`
	LearningStyle string `json:"learning_style"`
}

// RegisterRequest is the body for POST /users.
type RegisterRequest struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	Expertise     string `json:"expertise"`
	LearningStyle string `json:"learning_style"`
	Password      string `json:"password"`
}

// LoginResponse is the body returned by POST /users/login and POST /users.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}
