// Package fixtures provides test data factories for Agora stores.
//
// The factory works against any backend through small creator interfaces,
// so the same fixtures serve SurrealDB and relational tests:
//
//	f := fixtures.New(users, posts)
//	admin := f.CreateAdmin(t)
//	f.CreatePosts(t, admin, 25)
package fixtures
