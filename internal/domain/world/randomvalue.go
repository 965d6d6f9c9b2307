package world

import (
	"encoding/json"
	"errors"
)

type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// RandomValue is an inclusive [Min, Max] range.
type RandomValue[T Integer] struct {
	Min T `json:"min"`
	Max T `json:"max"`
}

var ErrInvalidRandomValue = errors.New("invalid random value")

func NewRandomValue[T Integer](lo, hi T) RandomValue[T] {
	if lo > hi {
		lo, hi = hi, lo
	}
	return RandomValue[T]{Min: lo, Max: hi}
}

func Fixed[T Integer](v T) RandomValue[T] {
	return RandomValue[T]{Min: v, Max: v}
}

func (r RandomValue[T]) IsSet() bool {
	return r.Min != 0 || r.Max != 0
}

func (r RandomValue[T]) Div(n T) RandomValue[T] {
	if n == 0 {
		return r
	}
	return RandomValue[T]{Min: r.Min / n, Max: r.Max / n}
}

// UnmarshalJSON accepts 5, [1, 5] or {"min":1,"max":5}.
func (r *RandomValue[T]) UnmarshalJSON(data []byte) error {
	var single T
	if err := json.Unmarshal(data, &single); err == nil {
		*r = Fixed(single)
		return nil
	}
	var pair []T
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return ErrInvalidRandomValue
		}
		*r = NewRandomValue(pair[0], pair[1])
		return nil
	}
	var obj struct {
		Min T `json:"min"`
		Max T `json:"max"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return ErrInvalidRandomValue
	}
	*r = NewRandomValue(obj.Min, obj.Max)
	return nil
}
