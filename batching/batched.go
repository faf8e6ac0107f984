package batching

// Batched runs fn through s.BatchedUpdates and hands back its result.
func Batched[R any](s *Strategy, fn func() (R, error)) (R, error) {
	var r R
	err := s.BatchedUpdates(func() (err error) {
		r, err = fn()
		return err
	})
	return r, err
}

func Batched1[A, R any](s *Strategy, fn func(A) (R, error), a A) (R, error) {
	return Batched(s, func() (R, error) {
		return fn(a)
	})
}

func Batched2[A, B, R any](s *Strategy, fn func(A, B) (R, error), a A, b B) (R, error) {
	return Batched(s, func() (R, error) {
		return fn(a, b)
	})
}

func Batched3[A, B, C, R any](s *Strategy, fn func(A, B, C) (R, error), a A, b B, c C) (R, error) {
	return Batched(s, func() (R, error) {
		return fn(a, b, c)
	})
}

func Batched4[A, B, C, D, R any](s *Strategy, fn func(A, B, C, D) (R, error), a A, b B, c C, d D) (R, error) {
	return Batched(s, func() (R, error) {
		return fn(a, b, c, d)
	})
}

func Batched5[A, B, C, D, E, R any](s *Strategy, fn func(A, B, C, D, E) (R, error), a A, b B, c C, d D, e E) (R, error) {
	return Batched(s, func() (R, error) {
		return fn(a, b, c, d, e)
	})
}
