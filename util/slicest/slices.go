// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package slicest contains small generic slice helpers.
package slicest

// Map transforms every element of s with fn.
func Map[T, U any, S ~[]T](s S, fn func(T) U) []U {
	result := make([]U, 0, len(s))
	for _, t := range s {
		result = append(result, fn(t))
	}
	return result
}

// MapX transforms every element of s with fn, stopping on the first error.
func MapX[T, U any, S ~[]T](s S, fn func(T) (U, error)) ([]U, error) {
	result := make([]U, 0, len(s))
	for _, t := range s {
		u, err := fn(t)
		if err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, nil
}

// ToMap converts s to a map keyed by fn.
func ToMap[T any, K comparable, V any, S ~[]T](s S, fn func(T) (K, V)) map[K]V {
	result := make(map[K]V, len(s))
	for _, t := range s {
		k, v := fn(t)
		result[k] = v
	}
	return result
}
