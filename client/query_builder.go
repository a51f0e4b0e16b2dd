package client

import (
	"fmt"
	"net/url"
	"strings"
)

// QueryBuilder collects query parameters in insertion order.
type QueryBuilder struct {
	keys   []string
	values map[string]string
}

func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{values: make(map[string]string)}
}

// Add sets param to the %v rendering of value. A repeated param keeps its
// first position and takes the latest value.
func (q *QueryBuilder) Add(param string, value any) {
	if _, ok := q.values[param]; !ok {
		q.keys = append(q.keys, param)
	}
	q.values[param] = fmt.Sprintf("%v", value)
}

// AddIfNotEmpty adds param only when value is non-empty.
func (q *QueryBuilder) AddIfNotEmpty(param string, value string) {
	if value == "" {
		return
	}
	q.Add(param, value)
}

func (q *QueryBuilder) IsEmpty() bool {
	return len(q.keys) == 0
}

// Params returns a copy of the collected parameters.
func (q *QueryBuilder) Params() map[string]string {
	params := make(map[string]string, len(q.values))
	for k, v := range q.values {
		params[k] = v
	}
	return params
}

func (q *QueryBuilder) String() string {
	sb := strings.Builder{}
	for i, key := range q.keys {
		if i > 0 {
			sb.WriteString("&")
		}
		sb.WriteString(url.QueryEscape(key) + "=" + url.QueryEscape(q.values[key]))
	}
	return sb.String()
}
