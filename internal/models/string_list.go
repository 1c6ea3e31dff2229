package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
)

// StringList stores a list of free-text tags as a jsonb column.
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("unsupported type for StringList")
	}
	return json.Unmarshal(bytes, l)
}

// ContainsFold reports whether the list contains s, compared case-insensitively.
func (l StringList) ContainsFold(s string) bool {
	for _, item := range l {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
