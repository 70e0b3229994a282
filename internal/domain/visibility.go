package domain

// Requester identifies the caller a listing is produced for.
// A nil *Requester is an anonymous caller.
type Requester struct {
	ID int64
}

// VisibleTo reports whether requester may see p: active posts are visible to
// everyone, inactive posts only to their author.
func (p *Post) VisibleTo(requester *Requester) bool {
	if p.Active {
		return true
	}
	return requester != nil && requester.ID == p.Author.ID
}

// FilterVisible returns the posts requester may see, in input order.
func FilterVisible(posts []*Post, requester *Requester) []*Post {
	visible := make([]*Post, 0, len(posts))
	for _, p := range posts {
		if p != nil && p.VisibleTo(requester) {
			visible = append(visible, p)
		}
	}
	return visible
}
