package dto

// LoginRequest carries credentials for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"notblank,email" label:"email address"`
	Password string `json:"password" validate:"notblank,min=6,max=20" label:"password"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
	Token   string `json:"token"`
}
