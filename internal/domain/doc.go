// Package domain contains the core blogging entities (users, posts, tags),
// their input and partial-update shapes, and the pure rules that operate on
// them, such as tag name normalization and post visibility. It has no
// knowledge of storage or transport.
package domain
