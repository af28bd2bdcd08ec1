package dashboard

import (
	"errors"

	"github.com/preston-bernstein/f1-dashboard-service/internal/providers"
)

// EndpointError records which upstream endpoint a refresh failure came from.
type EndpointError struct {
	Endpoint string
	Err      error
}

func (e *EndpointError) Error() string {
	return e.Endpoint + ": " + e.Err.Error()
}

func (e *EndpointError) Unwrap() error {
	return e.Err
}

// selectionEndpoints resolve the season and race; without them the snapshot
// only carries defaults.
var selectionEndpoints = map[string]bool{
	providers.EndpointSeasons: true,
	providers.EndpointRaces:   true,
}

// SelectionErrors keeps the parts of a refresh error that left the dashboard
// without a real selection: season or race listing failures, and anything
// not tied to an endpoint such as cancellation. Failures of single panels
// are dropped. It returns nil when nothing remains.
func SelectionErrors(err error) error {
	if err == nil {
		return nil
	}
	var kept []error
	for _, leaf := range flattenErrors(err) {
		var endpointErr *EndpointError
		if errors.As(leaf, &endpointErr) && !selectionEndpoints[endpointErr.Endpoint] {
			continue
		}
		kept = append(kept, leaf)
	}
	return errors.Join(kept...)
}

func flattenErrors(err error) []error {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}
	var out []error
	for _, e := range joined.Unwrap() {
		out = append(out, flattenErrors(e)...)
	}
	return out
}
