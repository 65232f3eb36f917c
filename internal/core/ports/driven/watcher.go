package driven

import "context"

// ValueWatcher reports externally made changes to a composer value,
// such as a draft file edited in another program.
type ValueWatcher interface {
	// Watch starts watching and delivers each new value on the returned
	// channel. The channel is closed when ctx is done or Close is called.
	Watch(ctx context.Context) (<-chan string, error)

	// Write stores a value produced by the composer.
	Write(value string) error

	// Close stops watching.
	Close() error
}
