package dispatch

// RunAsync runs op on its own goroutine and posts done(result, err) to the
// bridge when it finishes. The operation is not preemptible: it always runs
// to completion, and a caller that loses interest can only ignore the
// delivered result. Timeouts belong inside op (a bounded wait on whatever
// it calls), not here.
//
// Because the result is delivered on a later drain, the document or
// selection it was computed for may have changed or closed in the
// meantime. Callbacks must re-validate their context before applying the
// result instead of assuming staleness-free delivery.
func RunAsync[T any](b *Bridge, op func() (T, error), done func(T, error)) {
	go func() {
		result, err := op()
		b.Post(func() {
			done(result, err)
		})
	}()
}
