package postgres

import (
	"strconv"
	"strings"

	"github.com/phrazzld/juicebox-api/internal/domain"
)

// column is a writable column name. Only the constants below exist, so an
// UPDATE can never name a column that came from a request.
type column string

const (
	columnTitle    column = "title"
	columnContent  column = "content"
	columnActive   column = "active"
	columnUsername column = "username"
	columnPassword column = "password"
	columnName     column = "name"
	columnLocation column = "location"
)

type assignment struct {
	column column
	value  any
}

// setClause renders assignments as "a = $1, b = $2" and returns the
// matching argument list. Placeholders are numbered from 1.
func setClause(assignments []assignment) (string, []any) {
	parts := make([]string, len(assignments))
	args := make([]any, len(assignments))
	for i, a := range assignments {
		parts[i] = string(a.column) + " = $" + strconv.Itoa(i+1)
		args[i] = a.value
	}
	return strings.Join(parts, ", "), args
}

// placeholders returns "$start, $start+1, ..." for n values.
func placeholders(start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "$" + strconv.Itoa(start+i)
	}
	return strings.Join(parts, ", ")
}

// valueRows returns "($start), ($start+1), ..." for a single-column multi-row VALUES list.
func valueRows(start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "($" + strconv.Itoa(start+i) + ")"
	}
	return strings.Join(parts, ", ")
}

func postAssignments(u domain.PostUpdate) []assignment {
	var out []assignment
	if u.Title != nil {
		out = append(out, assignment{columnTitle, *u.Title})
	}
	if u.Content != nil {
		out = append(out, assignment{columnContent, *u.Content})
	}
	if u.Active != nil {
		out = append(out, assignment{columnActive, *u.Active})
	}
	return out
}

func userAssignments(u domain.UserUpdate) []assignment {
	var out []assignment
	if u.Username != nil {
		out = append(out, assignment{columnUsername, *u.Username})
	}
	if u.Password != nil {
		out = append(out, assignment{columnPassword, *u.Password})
	}
	if u.Name != nil {
		out = append(out, assignment{columnName, *u.Name})
	}
	if u.Location != nil {
		out = append(out, assignment{columnLocation, *u.Location})
	}
	if u.Active != nil {
		out = append(out, assignment{columnActive, *u.Active})
	}
	return out
}
