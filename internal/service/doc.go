// Package service contains the application use cases that sit between the
// HTTP handlers and the store interfaces.
//
// Services own transactional boundaries: operations that touch more than one
// table run inside store.RunInTransaction using WithTx-bound stores, so a
// failure at any step rolls back every write made by that operation.
// Password hashing and credential checks are delegated to the auth package.
package service
