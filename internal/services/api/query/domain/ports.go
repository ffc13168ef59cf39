package domain

import "context"

// ServicePort is consumed by handlers
type ServicePort interface {
	Query(ctx context.Context, in QueryInput) (QueryResult, error)
	Count(ctx context.Context, in QueryInput) (CountResult, error)
}
