package services

import "strings"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type PageQuery struct {
	Page int
	Size int
	// Q filters by case-insensitive substring.
	Q string
}

func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size <= 0 {
		q.Size = DefaultPageSize
	}
	if q.Size > MaxPageSize {
		q.Size = MaxPageSize
	}
	q.Q = strings.TrimSpace(q.Q)
	return q
}

type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	Size       int `json:"size"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Paginate slices an already filtered list. Pages past the end are empty.
func Paginate[T any](items []T, q PageQuery) Page[T] {
	q = q.Normalize()
	total := len(items)
	start := (q.Page - 1) * q.Size
	end := start + q.Size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return Page[T]{
		Items:      out,
		Page:       q.Page,
		Size:       q.Size,
		Total:      total,
		TotalPages: (total + q.Size - 1) / q.Size,
	}
}
