package domain

import "strings"

// User is the public representation of a registered author.
// It never carries the stored credential.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Active   bool   `json:"active"`
}

// UserWithPosts is the by-id view of a user. Posts is always encoded,
// as an empty array when the user has none.
type UserWithPosts struct {
	User
	Posts []*Post `json:"posts"`
}

// WithVisiblePosts returns a copy holding only the posts requester may see.
// The copy's Posts is never nil.
func (u *UserWithPosts) WithVisiblePosts(requester *Requester) *UserWithPosts {
	if u == nil {
		return nil
	}
	return &UserWithPosts{User: u.User, Posts: FilterVisible(u.Posts, requester)}
}

// UserRecord is the raw users row, including the stored password.
// It is only handed to credential checks; the password is never serialised.
type UserRecord struct {
	User
	Password string `json:"-"`
}

// Public returns a copy of the record without the password.
func (r *UserRecord) Public() *User {
	if r == nil {
		return nil
	}
	u := r.User
	return &u
}

// NewUser holds the fields needed to register a user.
type NewUser struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=255"`
	Name     string `json:"name" validate:"max=255"`
	Location string `json:"location" validate:"max=255"`
}

// Validate checks the registration fields.
func (u NewUser) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return NewValidationError("username", "cannot be empty", ErrEmptyContent)
	}
	if u.Password == "" {
		return NewValidationError("password", "cannot be empty", ErrEmptyContent)
	}
	return nil
}

// UserUpdate is a partial update of a user. Nil fields are left untouched.
type UserUpdate struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=1,max=255"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=1,max=255"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=255"`
	Active   *bool   `json:"active,omitempty"`
}

// IsEmpty reports whether the update sets no field at all.
func (u UserUpdate) IsEmpty() bool {
	return u.Username == nil &&
		u.Password == nil &&
		u.Name == nil &&
		u.Location == nil &&
		u.Active == nil
}
