package domain

import "context"

// Transport executes one _msearch request body and returns the decoded response.
// Implementations report non-200 statuses as StatusError and network faults as FaultError
type Transport interface {
	Execute(ctx context.Context, body []byte) (MultiSearchResponse, error)
}

// RetrieverPort is the public port exposed by the retrieval module
type RetrieverPort interface {
	// Query returns every document matching spec, in window order, or the first error
	Query(ctx context.Context, spec QuerySpec) ([]Document, error)

	// Count sums the reported totals of each window without fetching documents
	Count(ctx context.Context, spec QuerySpec) (int64, error)
}
