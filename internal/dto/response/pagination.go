package response

import (
	"encoding/json"
	"fmt"
	"strings"

	"shop-backend/pkg/utils"
)

type PaginatedResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

type PaginationMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
}

func NewPaginatedResponse[T any](data []T, page, perPage int, total int64) *PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}

	return &PaginatedResponse[T]{
		Data: data,
		Pagination: PaginationMeta{
			Page:       page,
			PerPage:    perPage,
			Total:      total,
			TotalPages: utils.CalculateTotalPages(total, perPage),
		},
	}
}

// Project keeps only the listed json keys of each item, or drops the keys listed with a
// leading '-'. "id" always survives an inclusion list. No fields returns items unchanged.
func Project[T any](items []T, fields []string) ([]map[string]any, error) {
	include := map[string]bool{}
	exclude := map[string]bool{}
	for _, f := range fields {
		if name, ok := strings.CutPrefix(f, "-"); ok {
			exclude[name] = true
		} else {
			include[f] = true
		}
	}
	if len(include) > 0 && len(exclude) > 0 {
		return nil, fmt.Errorf("fields cannot mix inclusion and exclusion")
	}

	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("marshal item: %w", err)
		}
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal item: %w", err)
		}
		for key := range doc {
			switch {
			case len(include) > 0 && !include[key] && key != "id":
				delete(doc, key)
			case exclude[key]:
				delete(doc, key)
			}
		}
		out = append(out, doc)
	}
	return out, nil
}

// ProjectPage applies Project to a page and keeps its pagination meta.
func ProjectPage[T any](page *PaginatedResponse[T], fields []string) (*PaginatedResponse[map[string]any], error) {
	data, err := Project(page.Data, fields)
	if err != nil {
		return nil, err
	}
	return &PaginatedResponse[map[string]any]{Data: data, Pagination: page.Pagination}, nil
}
