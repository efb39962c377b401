package users

// CreateUserRequest represents the data needed to create a new user
type CreateUserRequest struct {
	Username string `json:"username"`
}

// UserResponse is the wire shape for a user. The id key is `_id` for
// compatibility with existing clients of the original API.
type UserResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}
