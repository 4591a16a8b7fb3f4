package utils

import "math/rand"

func ValuesFunc[T any, V any](array []T, f func(T) V, filter ...func(T) bool) []V {
	var filterFunc func(T) bool
	if len(filter) > 0 {
		filterFunc = filter[0]
	}
	var values []V
	for idx := 0; idx < len(array); idx++ {
		if filterFunc != nil && !filterFunc(array[idx]) {
			continue
		}
		values = append(values, f(array[idx]))
	}
	return values
}

// Chunks splits array into consecutive slices of at most size elements.
func Chunks[T any](array []T, size int) [][]T {
	if size <= 0 {
		size = len(array)
	}
	var chunkArray [][]T
	for start := 0; start < len(array); start += size {
		end := min(start+size, len(array))
		chunkArray = append(chunkArray, array[start:end])
	}
	return chunkArray
}

// UniqueFunc keeps the first element for each key, preserving order.
func UniqueFunc[T any, K comparable](array []T, key func(T) K) []T {
	seen := make(map[K]bool, len(array))
	var result []T
	for _, v := range array {
		k := key(v)
		if seen[k] {
			continue
		}
		seen[k] = true
		result = append(result, v)
	}
	return result
}

func RandomElement[T any](array []T) T {
	return array[rand.Intn(len(array))]
}
