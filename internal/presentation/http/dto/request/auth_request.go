package request

// LoginRequest represents an operator login request
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	PIN      string `json:"pin" binding:"required,min=4,max=12,numeric"`
}
