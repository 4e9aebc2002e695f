package repository

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"shop-backend/internal/dto/request"
	"shop-backend/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

type columnKind int

const (
	kindText columnKind = iota
	kindNumber
	kindInt
	kindBool
	kindTime
)

type column struct {
	name string
	kind columnKind
}

// listSchema whitelists the fields a list query may filter or sort on.
type listSchema struct {
	columns map[string]column
	aliases map[string]string
}

func (s listSchema) lookup(field string) (column, bool) {
	if alias, ok := s.aliases[field]; ok {
		field = alias
	}
	col, ok := s.columns[field]
	return col, ok
}

// where renders the filters as a WHERE body with placeholders starting at $argStart.
func (s listSchema) where(filters []request.Filter, argStart int) (string, []any, error) {
	if len(filters) == 0 {
		return "TRUE", nil, nil
	}

	clauses := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	for _, f := range filters {
		col, ok := s.lookup(f.Field)
		if !ok {
			return "", nil, apperror.Validation(fmt.Sprintf("cannot filter on %q", f.Field))
		}
		value, err := convertValue(col.kind, f.Value)
		if err != nil {
			return "", nil, apperror.Validation(fmt.Sprintf("invalid value for %q: %v", f.Field, err))
		}
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s %s $%d", col.name, f.Op, argStart+len(args)-1))
	}
	return strings.Join(clauses, " AND "), args, nil
}

// orderBy renders sort keys, newest first when none are given.
func (s listSchema) orderBy(keys []request.SortKey) (string, error) {
	if len(keys) == 0 {
		return "created_at DESC", nil
	}

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		col, ok := s.lookup(key.Field)
		if !ok {
			return "", apperror.Validation(fmt.Sprintf("cannot sort on %q", key.Field))
		}
		dir := "ASC"
		if key.Desc {
			dir = "DESC"
		}
		parts = append(parts, col.name+" "+dir)
	}
	return strings.Join(parts, ", "), nil
}

func convertValue(kind columnKind, raw string) (any, error) {
	switch kind {
	case kindNumber:
		return strconv.ParseFloat(raw, 64)
	case kindInt:
		return strconv.Atoi(raw)
	case kindBool:
		return strconv.ParseBool(raw)
	case kindTime:
		return time.Parse(time.RFC3339, raw)
	default:
		return raw, nil
	}
}

// listSQL builds the page query and the matching count query for table.
func (s listSchema) listSQL(selectCols, table string, q request.ListQuery) (string, string, []any, error) {
	where, args, err := s.where(q.Filters, 1)
	if err != nil {
		return "", "", nil, err
	}
	order, err := s.orderBy(q.Sort)
	if err != nil {
		return "", "", nil, err
	}

	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", table, where)
	listSQL := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s LIMIT %d OFFSET %d",
		selectCols, table, where, order, q.Limit(), q.Offset())

	return listSQL, countSQL, args, nil
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// constraintName returns the violated constraint, empty for other errors.
func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
