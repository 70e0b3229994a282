package mocks

import "github.com/phrazzld/juicebox-api/internal/service/auth"

// MockPassword implements auth.PasswordHasher and auth.PasswordVerifier.
// Hash prefixes the password with "hashed:" and Compare accepts exactly
// that form unless the function fields override them.
type MockPassword struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	// HashCallCount tracks how many times Hash was called
	HashCallCount int
}

var (
	_ auth.PasswordHasher   = (*MockPassword)(nil)
	_ auth.PasswordVerifier = (*MockPassword)(nil)
)

// Hash implements auth.PasswordHasher
func (m *MockPassword) Hash(password string) (string, error) {
	m.HashCallCount++
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}

// Compare implements auth.PasswordVerifier
func (m *MockPassword) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if hashedPassword != "hashed:"+password {
		return auth.ErrPasswordMismatch
	}
	return nil
}
