// Package repo provides the generic Neo4j-backed repository used to page
// vehicles and maintenance records out of the graph at catalog load time.
package repo

import "context"

// Repository is a generic CRUD interface over one node label.
type Repository[T any, ID comparable] interface {
	Get(ctx context.Context, id ID) (T, error)
	List(ctx context.Context, opts ListOpts) ([]T, error)
	Create(ctx context.Context, entity T) (T, error)
	Update(ctx context.Context, entity T) (T, error)
	Delete(ctx context.Context, id ID) error
}

// ListOpts controls pagination for List. A zero Limit falls back to the
// backend default page size.
type ListOpts struct {
	Offset int
	Limit  int
}
