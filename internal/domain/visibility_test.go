package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterVisible(t *testing.T) {
	active := &Post{ID: 1, Active: true, Author: Author{ID: 1}}
	hiddenByOne := &Post{ID: 2, Active: false, Author: Author{ID: 1}}
	hiddenByTwo := &Post{ID: 3, Active: false, Author: Author{ID: 2}}
	posts := []*Post{active, hiddenByOne, hiddenByTwo}

	t.Run("anonymous sees only active posts", func(t *testing.T) {
		assert.Equal(t, []*Post{active}, FilterVisible(posts, nil))
	})

	t.Run("author sees own inactive posts", func(t *testing.T) {
		assert.Equal(t, []*Post{active, hiddenByOne}, FilterVisible(posts, &Requester{ID: 1}))
	})

	t.Run("other user does not see foreign inactive posts", func(t *testing.T) {
		assert.Equal(t, []*Post{active, hiddenByTwo}, FilterVisible(posts, &Requester{ID: 2}))
	})

	t.Run("empty input gives empty non-nil result", func(t *testing.T) {
		got := FilterVisible(nil, nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("nothing visible gives empty non-nil result", func(t *testing.T) {
		got := FilterVisible([]*Post{hiddenByTwo}, &Requester{ID: 9})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
