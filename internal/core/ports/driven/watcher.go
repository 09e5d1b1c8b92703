package driven

import "context"

// ProfileWatcher notifies when profile files change on disk.
type ProfileWatcher interface {
	// Watch calls onChange with the changed paths until ctx is done.
	// Bursts of events are coalesced. Watch blocks and returns ctx.Err()
	// on cancellation, or an error if the files cannot be watched.
	Watch(ctx context.Context, paths []string, onChange func(changed []string)) error
}
