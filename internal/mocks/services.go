package mocks

import (
	"context"

	"github.com/phrazzld/juicebox-api/internal/domain"
	"github.com/phrazzld/juicebox-api/internal/service"
	"github.com/phrazzld/juicebox-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// PostService is a testify mock of service.PostService.
type PostService struct {
	mock.Mock
}

var _ service.PostService = (*PostService)(nil)

func (m *PostService) CreatePost(ctx context.Context, post domain.NewPost) (*domain.Post, error) {
	args := m.Called(ctx, post)
	return postArg(args, 0), args.Error(1)
}

func (m *PostService) UpdatePost(
	ctx context.Context,
	requesterID, postID int64,
	update domain.PostUpdate,
) (*domain.Post, error) {
	args := m.Called(ctx, requesterID, postID, update)
	return postArg(args, 0), args.Error(1)
}

func (m *PostService) GetPost(ctx context.Context, postID int64, requester *domain.Requester) (*domain.Post, error) {
	args := m.Called(ctx, postID, requester)
	return postArg(args, 0), args.Error(1)
}

func (m *PostService) ListPosts(ctx context.Context, requester *domain.Requester) ([]*domain.Post, error) {
	args := m.Called(ctx, requester)
	posts, _ := args.Get(0).([]*domain.Post)
	return posts, args.Error(1)
}

func (m *PostService) ListPostsByTag(
	ctx context.Context,
	tagName string,
	requester *domain.Requester,
) ([]*domain.Post, error) {
	args := m.Called(ctx, tagName, requester)
	posts, _ := args.Get(0).([]*domain.Post)
	return posts, args.Error(1)
}

func (m *PostService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	args := m.Called(ctx)
	tags, _ := args.Get(0).([]domain.Tag)
	return tags, args.Error(1)
}

// UserService is a testify mock of service.UserService.
type UserService struct {
	mock.Mock
}

var _ service.UserService = (*UserService)(nil)

func (m *UserService) Register(ctx context.Context, user domain.NewUser) (store.UserResult, error) {
	args := m.Called(ctx, user)
	result, _ := args.Get(0).(store.UserResult)
	return result, args.Error(1)
}

func (m *UserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *UserService) UpdateUser(ctx context.Context, id int64, update domain.UserUpdate) (store.UserResult, error) {
	args := m.Called(ctx, id, update)
	result, _ := args.Get(0).(store.UserResult)
	return result, args.Error(1)
}

func (m *UserService) GetUser(ctx context.Context, id int64) (*domain.UserWithPosts, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.UserWithPosts)
	return user, args.Error(1)
}

func (m *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*domain.User)
	return users, args.Error(1)
}
