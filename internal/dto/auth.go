package dto

// RegisterRequest is the body for POST /register. Binds from form or JSON;
// field-level length and match rules live in the service so their outcomes
// map onto the error taxonomy rather than generic binding failures.
type RegisterRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
	Confirm  string `form:"confirm" json:"confirm"`
}

// LoginRequest is the body for POST /login. Password carries no binding rule:
// an empty password must reach the credential check and fail there, so every
// bad login gets the same invalid-credentials response.
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password"`
}

// UserResponse is returned when user info is needed (e.g. after login).
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// FormField describes one input of a form for GET /register and GET /login,
// consumed by the rendering collaborator.
type FormField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// FormResponse lists the fields a form POST expects.
type FormResponse struct {
	Action string      `json:"action"`
	Fields []FormField `json:"fields"`
}
