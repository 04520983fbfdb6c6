package schema

// Schema validates values of type T. Implementations must be pure: they are
// evaluated again whenever a dependent cell is read after a write.
type Schema[T any] interface {
	Validate(value T) Result
}

// Func adapts a function into a Schema.
type Func[T any] func(value T) Result

// Validate delegates to the function.
func (fn Func[T]) Validate(value T) Result {
	if fn == nil {
		return Ok()
	}
	return fn(value)
}

// All evaluates every schema in order and concatenates their issues.
func All[T any](schemas ...Schema[T]) Schema[T] {
	filtered := make([]Schema[T], 0, len(schemas))
	for _, s := range schemas {
		if s != nil {
			filtered = append(filtered, s)
		}
	}
	return Func[T](func(value T) Result {
		var issues []Issue
		for _, s := range filtered {
			res := s.Validate(value)
			if !res.Valid {
				issues = append(issues, res.Issues...)
			}
		}
		return Fail(issues...)
	})
}

// Validate runs s against value, treating a nil schema as always valid and
// normalising inconsistent results.
func Validate[T any](s Schema[T], value T) Result {
	if s == nil {
		return Ok()
	}
	res := s.Validate(value)
	if len(res.Issues) == 0 {
		return Ok()
	}
	res.Valid = false
	return res
}
