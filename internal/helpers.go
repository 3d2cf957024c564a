package internal

import "strconv"

// Scalar is the set of types positional parameters and request variables
// can be converted to.
type Scalar interface {
	~string | ~int | ~int64 | ~float64 | ~bool
}

// Param returns the i-th positional parameter converted to T.
// A missing or unparsable parameter yields the zero value.
//
// Example:
//
//	func (p *Posts) View(params ...string) error {
//	    id := mvc.Param[int64](p.Request, 0)
//	    ...
//	}
func Param[T Scalar](r *Request, i int) T {
	var zero T
	if i < 0 || i >= len(r.Params) {
		return zero
	}
	v, _ := convertParam[T](r.Params[i])
	return v
}

// VarAs returns a GET or POST variable converted to T.
func VarAs[T Scalar](r *Request, key string) T {
	raw, _ := r.Var(key)
	v, _ := convertParam[T](raw)
	return v
}

// VarDefault returns a typed GET or POST variable, or defaultValue when the
// variable is empty or cannot be parsed.
func VarDefault[T Scalar](r *Request, key string, defaultValue T) T {
	raw, ok := r.Var(key)
	if !ok || raw == "" {
		return defaultValue
	}
	v, ok := convertParam[T](raw)
	if !ok {
		return defaultValue
	}
	return v
}

func convertParam[T Scalar](raw string) (T, bool) {
	var zero T
	switch any(zero).(type) {
	case string:
		return any(raw).(T), true
	case int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	case int64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	case float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	case bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	}
	return zero, false
}
