package store

import "github.com/phrazzld/juicebox-api/internal/domain"

// Outcome describes what a write actually did.
type Outcome string

const (
	// OutcomeApplied means the write changed or resolved at least one row.
	OutcomeApplied Outcome = "applied"

	// OutcomeAlreadyExists means an insert hit a unique key and was skipped.
	OutcomeAlreadyExists Outcome = "already_exists"

	// OutcomeNoop means there was nothing to write and no query was issued.
	OutcomeNoop Outcome = "noop"
)

// UserResult is returned by user writes. User is nil unless Outcome is
// OutcomeApplied.
type UserResult struct {
	User    *domain.UserRecord
	Outcome Outcome
}

// TagsResult is returned by UpsertTags. Tags is never nil.
type TagsResult struct {
	Tags    []domain.Tag
	Outcome Outcome
}
