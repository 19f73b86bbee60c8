package ports

import "context"

// Fetcher is the data-fetch port used by dynamic screens. The engine relies on
// a single contract: a synchronous return of zero or more records, where an
// empty slice is a valid (not erroneous) result.
//
// Caching, retries and authentication are the implementation's business. The
// recommended integration policy is to absorb upstream failures and return an
// empty slice, since the engine treats empty results as a normal outcome.
type Fetcher interface {
	Call(ctx context.Context, url, method string) ([]map[string]any, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url, method string) ([]map[string]any, error)

// Call implements Fetcher.
func (f FetcherFunc) Call(ctx context.Context, url, method string) ([]map[string]any, error) {
	return f(ctx, url, method)
}
