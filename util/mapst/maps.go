// Copyright (c) 2026 Curvekey Team
// Curvekey - EC key material toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package mapst contains small generic map helpers.
package mapst

// Keys returns the keys of m in unspecified order.
func Keys[K comparable, V any, M ~map[K]V](m M) []K {
	result := make([]K, 0, len(m))
	for k := range m {
		result = append(result, k)
	}
	return result
}

// Values returns the values of m in unspecified order.
func Values[K comparable, V any, M ~map[K]V](m M) []V {
	result := make([]V, 0, len(m))
	for _, v := range m {
		result = append(result, v)
	}
	return result
}

// Map transforms every entry of m with fn.
func Map[K comparable, V any, R any, M ~map[K]V](m M, fn func(K, V) R) map[K]R {
	if len(m) == 0 {
		return nil
	}
	result := make(map[K]R, len(m))
	for k, v := range m {
		result[k] = fn(k, v)
	}
	return result
}
