package api

import "github.com/phrazzld/juicebox-api/internal/domain"

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name"     validate:"max=255"`
	Location string `json:"location" validate:"max=255"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
	Token   string       `json:"token"`
}

// UpdateUserRequest defines the payload for PATCH /api/users/{userID}.
type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1,max=255"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
	Name     *string `json:"name"     validate:"omitempty,max=255"`
	Location *string `json:"location" validate:"omitempty,max=255"`
	Active   *bool   `json:"active"`
}

// CreatePostRequest defines the payload for POST /api/posts.
type CreatePostRequest struct {
	Title   string   `json:"title"   validate:"required,max=255"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags"    validate:"omitempty,dive,max=255"`
}

// UpdatePostRequest defines the payload for PATCH /api/posts/{postID}.
// A present tags array, even an empty one, replaces the post's tag set.
type UpdatePostRequest struct {
	Title   *string   `json:"title"   validate:"omitempty,min=1,max=255"`
	Content *string   `json:"content" validate:"omitempty,min=1"`
	Active  *bool     `json:"active"`
	Tags    *[]string `json:"tags"    validate:"omitempty,dive,max=255"`
}

func (req UpdateUserRequest) toDomain() domain.UserUpdate {
	return domain.UserUpdate{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Location: req.Location,
		Active:   req.Active,
	}
}

func (req UpdatePostRequest) toDomain() domain.PostUpdate {
	return domain.PostUpdate{
		Title:   req.Title,
		Content: req.Content,
		Active:  req.Active,
		Tags:    req.Tags,
	}
}
