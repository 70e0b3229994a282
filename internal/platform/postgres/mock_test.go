package postgres_test

import (
	"database/sql"
	"strconv"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/juicebox-api/internal/domain"
	"github.com/stretchr/testify/require"
)

// Statements as issued by the repositories, whitespace-collapsed.
const (
	qInsertPost    = "INSERT INTO posts (author_id, title, content) VALUES ($1, $2, $3) RETURNING id"
	qSelectPost    = "SELECT id, author_id, title, content, active FROM posts WHERE id = $1"
	qSelectAuthor  = "SELECT id, username, name, location FROM users WHERE id = $1"
	qPostTags      = "SELECT tags.id, tags.name FROM tags JOIN post_tags ON post_tags.tag_id = tags.id WHERE post_tags.post_id = $1 ORDER BY tags.id"
	qLockPost      = "SELECT id FROM posts WHERE id = $1 FOR UPDATE"
	qLinkTag       = "INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2) ON CONFLICT (post_id, tag_id) DO NOTHING"
	qUnlinkAll     = "DELETE FROM post_tags WHERE post_id = $1"
	qAllPostIDs    = "SELECT id FROM posts ORDER BY id"
	qUserPostIDs   = "SELECT id FROM posts WHERE author_id = $1 ORDER BY id"
	qTagPostIDs    = "SELECT posts.id FROM posts JOIN post_tags ON post_tags.post_id = posts.id JOIN tags ON tags.id = post_tags.tag_id WHERE tags.name = $1 ORDER BY posts.id"
	qAllTags       = "SELECT id, name FROM tags ORDER BY id"
	qAllUsers      = "SELECT id, username, name, location, active FROM users ORDER BY id"
	qUserByID      = "SELECT id, username, name, location, active FROM users WHERE id = $1"
	qUserByName    = "SELECT id, username, password, name, location, active FROM users WHERE username = $1"
	qInsertUser    = "INSERT INTO users (username, password, name, location) VALUES ($1, $2, $3, $4) ON CONFLICT (username) DO NOTHING RETURNING id, username, password, name, location, active"
	userRecordCols = "id, username, password, name, location, active"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// expectPost registers the three queries that assemble one post.
func expectPost(mock sqlmock.Sqlmock, id, authorID int64, title string, active bool, tags ...domain.Tag) {
	mock.ExpectQuery(qSelectPost).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id", "title", "content", "active"}).
			AddRow(id, authorID, title, "content of "+title, active))

	tagRows := sqlmock.NewRows([]string{"id", "name"})
	for _, tag := range tags {
		tagRows.AddRow(tag.ID, tag.Name)
	}
	mock.ExpectQuery(qPostTags).WithArgs(id).WillReturnRows(tagRows)

	mock.ExpectQuery(qSelectAuthor).
		WithArgs(authorID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "name", "location"}).
			AddRow(authorID, "user"+strconv.FormatInt(authorID, 10), "Name", "Somewhere"))
}

func idRows(ids ...int64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id"})
	for _, id := range ids {
		rows.AddRow(id)
	}
	return rows
}
