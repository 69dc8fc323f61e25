package interfaces

import "context"

// Fetcher is the black-box HTTP fetch collaborator. Implementations return
// the response body for 2xx responses and *NetworkError otherwise.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
