package patient

import "context"

// LoadResult is the outcome of reading persisted state.
type LoadResult struct {
	Patient Patient
	// Defaulted is set when no usable state existed and Patient was
	// generated from the ideal ranges instead.
	Defaulted bool
}

// Gateway persists the latest patient snapshot.
//
// Load must tolerate missing or corrupt state by returning a defaulted
// patient; errors are reserved for I/O failures the caller cannot recover
// from by defaulting.
type Gateway interface {
	Load(ctx context.Context) (LoadResult, error)
	Save(ctx context.Context, p Patient) error
}
