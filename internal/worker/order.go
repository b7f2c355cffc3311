package worker

// Reorder hands results to fn in Index order, starting at index 0, buffering the
// ones that arrive early. It stops at the first error fn returns.
func Reorder[R any](results <-chan Result[R], fn func(Result[R]) error) error {
	pending := make(map[int]Result[R])
	next := 0
	for r := range results {
		pending[r.Index] = r
		for {
			ready, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if err := fn(ready); err != nil {
				return err
			}
		}
	}
	return nil
}
