package request

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"shop-backend/pkg/utils"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"limit" validate:"min=1,max=100"`
	// PageSet is true when the client asked for a page explicitly.
	PageSet bool `json:"-"`
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.Page, p.Limit())
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		return MaxPerPage
	}
	return p.PerPage
}

// OutOfRange reports whether an explicitly requested page starts past total rows.
func (p PaginatedRequest) OutOfRange(total int64) bool {
	return p.PageSet && int64(p.Offset()) >= total
}

type Operator string

const (
	OpEq  Operator = "="
	OpGte Operator = ">="
	OpGt  Operator = ">"
	OpLte Operator = "<="
	OpLt  Operator = "<"
)

var comparators = map[string]Operator{
	"gte": OpGte,
	"gt":  OpGt,
	"lte": OpLte,
	"lt":  OpLt,
}

// Filter is one field comparison taken from the query string.
type Filter struct {
	Field string
	Op    Operator
	Value string
}

type SortKey struct {
	Field string
	Desc  bool
}

// ListQuery is a parsed list request: filters, sort, projection and page.
type ListQuery struct {
	PaginatedRequest
	Filters []Filter
	Sort    []SortKey
	// Fields selects output keys; entries prefixed with '-' are excluded instead.
	Fields []string
}

// reserved keys never become filters
var reservedKeys = map[string]bool{
	"page":   true,
	"sort":   true,
	"limit":  true,
	"fields": true,
}

// ParseListQuery reads ?title=x&price[gte]=10&sort=-price,title&fields=title,price&page=2&limit=5.
func ParseListQuery(values url.Values) (ListQuery, error) {
	q := ListQuery{
		PaginatedRequest: PaginatedRequest{Page: 1, PerPage: DefaultPerPage},
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return q, fmt.Errorf("invalid page %q", raw)
		}
		q.Page = page
		q.PageSet = true
	}
	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return q, fmt.Errorf("invalid limit %q", raw)
		}
		q.PerPage = min(limit, MaxPerPage)
	}

	for _, key := range splitList(values.Get("sort")) {
		if desc := strings.HasPrefix(key, "-"); desc {
			q.Sort = append(q.Sort, SortKey{Field: key[1:], Desc: true})
		} else {
			q.Sort = append(q.Sort, SortKey{Field: key})
		}
	}

	q.Fields = splitList(values.Get("fields"))

	for key, vals := range values {
		if reservedKeys[key] || len(vals) == 0 {
			continue
		}
		field, op, err := parseFilterKey(key)
		if err != nil {
			return q, err
		}
		for _, v := range vals {
			q.Filters = append(q.Filters, Filter{Field: field, Op: op, Value: v})
		}
	}
	sortFilters(q.Filters)

	return q, nil
}

// parseFilterKey splits "price[gte]" into ("price", ">=").
func parseFilterKey(key string) (string, Operator, error) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return key, OpEq, nil
	}
	if !strings.HasSuffix(key, "]") || open == 0 {
		return "", "", fmt.Errorf("invalid filter %q", key)
	}
	op, ok := comparators[key[open+1:len(key)-1]]
	if !ok {
		return "", "", fmt.Errorf("unsupported comparator in %q", key)
	}
	return key[:open], op, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// sortFilters orders filters by field then operator so generated SQL is stable.
func sortFilters(filters []Filter) {
	sort.Slice(filters, func(i, j int) bool {
		a, b := filters[i], filters[j]
		if a.Field != b.Field {
			return a.Field < b.Field
		}
		if a.Op != b.Op {
			return a.Op < b.Op
		}
		return a.Value < b.Value
	})
}
