// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/rollcall/rollcall/internal/model"
)

// CreateUserRequest represents the request body for creating a user.
// Pointer fields distinguish an absent key from an empty string.
type CreateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserListResponse is the envelope returned by the list operation.
// Limit and Offset echo the effective values used for the query.
type UserListResponse struct {
	Users  []UserResponse `json:"users"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToUserResponse converts a User model to UserResponse DTO.
// Timestamps are normalized to UTC so they serialize as ISO-8601 with a Z suffix.
func ToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt.UTC(),
	}
}

// ToUserListResponse converts a slice of User models to UserListResponse.
func ToUserListResponse(users []*model.User, limit, offset int) *UserListResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = *ToUserResponse(user)
	}
	return &UserListResponse{
		Users:  responses,
		Limit:  limit,
		Offset: offset,
	}
}
