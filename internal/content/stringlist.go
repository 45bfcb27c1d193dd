// Package content holds value types shared by the about, project and
// services content tables.
package content

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// StringList is an array-of-string column (features, tech, points).
// It is never nil once decoded: absent, null and empty input all become an
// empty list. On input it accepts either a JSON array or a single
// comma-separated string, which is how the admin forms submit it.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*l = StringList{}
	case string:
		*l = SplitList(v)
	case []any:
		out := make(StringList, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("list item %d is not a string", i)
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		*l = out
	default:
		return fmt.Errorf("expected string or array of strings, got %T", raw)
	}
	return nil
}

func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Value stores the list as a Postgres text[]; nil is stored as '{}', not NULL.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return pq.StringArray{}.Value()
	}
	return pq.StringArray(l).Value()
}

func (l *StringList) Scan(src any) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	if arr == nil {
		*l = StringList{}
		return nil
	}
	*l = StringList(arr)
	return nil
}

// OrEmpty returns l, or an empty list when l is nil.
func (l StringList) OrEmpty() StringList {
	if l == nil {
		return StringList{}
	}
	return l
}

// SplitList splits a comma-separated string, trimming blanks and dropping
// empty items.
func SplitList(s string) StringList {
	out := StringList{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
