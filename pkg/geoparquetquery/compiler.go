package geoparquetquery

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/robert-malhotra/stac-go/pkg/search"
)

// describeColumns enumerates href's Parquet columns via DuckDB's DESCRIBE,
// per spec.md §4.8 step 1.
func describeColumns(ctx context.Context, conn *sql.DB, href string) ([]string, error) {
	query := fmt.Sprintf("SELECT column_name FROM (DESCRIBE SELECT * FROM read_parquet(%s))", quoteLiteral(href))
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("geoparquetquery: describing %s: %w", href, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("geoparquetquery: scanning column name: %w", err)
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}

// compileQuery builds the SELECT statement and bind arguments for a search
// against href's columns, applying the push-down filters spec.md §4.8 step
// 3 names.
func compileQuery(href string, columns []string, params *search.Params, maxItems int) (string, []any, error) {
	selected := projectColumns(columns, params)

	q := fmt.Sprintf("SELECT %s FROM read_parquet(%s)", strings.Join(selected, ", "), quoteLiteral(href))

	var conds []string
	var args []any

	if params != nil {
		if len(params.Bbox) >= 4 {
			conds = append(conds, "ST_Intersects(geometry, ST_MakeEnvelope(?, ?, ?, ?))")
			args = append(args, params.Bbox[0], params.Bbox[1], params.Bbox[2], params.Bbox[3])
		}
		if params.Datetime != "" {
			start, end, err := search.ParseDatetime(params.Datetime)
			if err != nil {
				return "", nil, fmt.Errorf("geoparquetquery: %w", err)
			}
			if start != nil {
				conds = append(conds, "datetime >= ?")
				args = append(args, start.UTC())
			}
			if end != nil {
				conds = append(conds, "datetime <= ?")
				args = append(args, end.UTC())
			}
		}
		if len(params.IDs) > 0 {
			cond, idArgs := inClause("id", params.IDs)
			conds = append(conds, cond)
			args = append(args, idArgs...)
		}
		if len(params.Collections) > 0 {
			cond, collArgs := inClause("collection", params.Collections)
			conds = append(conds, cond)
			args = append(args, collArgs...)
		}
		if len(params.Filter) > 0 {
			cond, fargs, err := translateFilterToSQL(params.Filter)
			if err != nil {
				return "", nil, err
			}
			conds = append(conds, cond)
			args = append(args, fargs...)
		}
	}

	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}

	limit := maxItems
	if params != nil && params.Limit != nil && (limit <= 0 || *params.Limit < limit) {
		limit = *params.Limit
	}
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}

	return q, args, nil
}

// projectColumns builds the SELECT list: every column as-is except the
// geometry column, which is cast to WKB bytes (spec.md §4.8 step 2), pruned
// by params.Fields when present (spec.md §4.8's "fields -> projection
// pruning").
func projectColumns(columns []string, params *search.Params) []string {
	var fields *search.FieldSelection
	if params != nil {
		fields = params.Fields
	}

	selected := make([]string, 0, len(columns))
	for _, c := range columns {
		if fields != nil && !fields.Keep(c) && c != "id" && c != "geometry" {
			continue
		}
		if c == "geometry" {
			selected = append(selected, "ST_AsWKB(geometry)::BLOB AS geometry")
			continue
		}
		selected = append(selected, quoteIdent(c))
	}
	if len(selected) == 0 {
		selected = append(selected, "*")
	}
	return selected
}

func inClause(column string, values []string) (string, []any) {
	placeholders := make([]string, len(values))
	args := make([]any, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		args[i] = v
	}
	return fmt.Sprintf("%s IN (%s)", quoteIdent(column), strings.Join(placeholders, ", ")), args
}

// translateFilterToSQL compiles a CQL2-JSON filter into a DuckDB boolean
// expression plus bind arguments, mirroring pkg/search.EvaluateFilter's
// tree-walk but emitting SQL instead of evaluating in-process.
func translateFilterToSQL(filter json.RawMessage) (string, []any, error) {
	var raw any
	if err := json.Unmarshal(filter, &raw); err != nil {
		return "", nil, fmt.Errorf("geoparquetquery: decoding filter: %w", err)
	}
	return sqlNode(raw)
}

func sqlNode(raw any) (string, []any, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return "", nil, fmt.Errorf("geoparquetquery: expected an object filter node")
	}
	op, _ := obj["op"].(string)
	args, _ := obj["args"].([]any)

	switch strings.ToLower(op) {
	case "and", "or":
		parts := make([]string, 0, len(args))
		var bindArgs []any
		for _, a := range args {
			cond, sub, err := sqlNode(a)
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, "("+cond+")")
			bindArgs = append(bindArgs, sub...)
		}
		joiner := " AND "
		if strings.EqualFold(op, "or") {
			joiner = " OR "
		}
		return strings.Join(parts, joiner), bindArgs, nil
	case "not":
		if len(args) != 1 {
			return "", nil, fmt.Errorf("geoparquetquery: 'not' requires exactly 1 argument")
		}
		cond, sub, err := sqlNode(args[0])
		if err != nil {
			return "", nil, err
		}
		return "NOT (" + cond + ")", sub, nil
	case "isnull":
		if len(args) != 1 {
			return "", nil, fmt.Errorf("geoparquetquery: 'isNull' requires exactly 1 argument")
		}
		col, err := sqlOperand(args[0])
		if err != nil {
			return "", nil, err
		}
		return col + " IS NULL", nil, nil
	case "=", "eq":
		return sqlComparison(args, "=")
	case "<>", "neq", "!=":
		return sqlComparison(args, "<>")
	case "<", "lt":
		return sqlComparison(args, "<")
	case "<=", "lte":
		return sqlComparison(args, "<=")
	case ">", "gt":
		return sqlComparison(args, ">")
	case ">=", "gte":
		return sqlComparison(args, ">=")
	case "like":
		return sqlComparison(args, "LIKE")
	case "in":
		if len(args) != 2 {
			return "", nil, fmt.Errorf("geoparquetquery: 'in' requires exactly 2 arguments")
		}
		col, err := sqlOperand(args[0])
		if err != nil {
			return "", nil, err
		}
		list, ok := args[1].([]any)
		if !ok {
			return "", nil, fmt.Errorf("geoparquetquery: 'in' second argument must be an array")
		}
		placeholders := make([]string, len(list))
		bindArgs := make([]any, len(list))
		for i, v := range list {
			placeholders[i] = "?"
			bindArgs[i] = v
		}
		return fmt.Sprintf("%s IN (%s)", col, strings.Join(placeholders, ", ")), bindArgs, nil
	default:
		return "", nil, fmt.Errorf("geoparquetquery: unsupported filter operator %q", op)
	}
}

func sqlComparison(args []any, op string) (string, []any, error) {
	if len(args) != 2 {
		return "", nil, fmt.Errorf("geoparquetquery: %s requires exactly 2 arguments", op)
	}
	left, err := sqlOperand(args[0])
	if err != nil {
		return "", nil, err
	}
	if prop, ok := args[1].(map[string]any); ok {
		right, err := sqlPropertyRef(prop)
		if err == nil {
			return fmt.Sprintf("%s %s %s", left, op, right), nil, nil
		}
	}
	return fmt.Sprintf("%s %s ?", left, op), []any{args[1]}, nil
}

// sqlOperand renders a CQL2 {"property": name} argument as a quoted SQL
// column reference; any other argument is an error.
func sqlOperand(arg any) (string, error) {
	if prop, ok := arg.(map[string]any); ok {
		return sqlPropertyRef(prop)
	}
	return "", fmt.Errorf("geoparquetquery: expected a {\"property\": name} reference")
}

func sqlPropertyRef(obj map[string]any) (string, error) {
	name, ok := obj["property"].(string)
	if !ok {
		return "", fmt.Errorf("geoparquetquery: expected a {\"property\": name} reference")
	}
	return quoteIdent(name), nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
