package dto

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateSubscriptionRequest struct {
	Subscription string `json:"subscription"`
}

type RequestVerificationRequest struct {
	Email string `json:"email"`
}

// UserResponse is the public projection of a user record. The password hash
// and token columns never appear in it.
type UserResponse struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
}

type SignupResponse struct {
	User UserResponse `json:"user"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
