package workflow

import "context"

// WithEitherDone returns a context that ends as soon as a or b ends.
// Values are taken from a.
func WithEitherDone(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(a)

	stopB := context.AfterFunc(b, cancel)

	return ctx, func() {
		stopB()
		cancel()
	}
}
