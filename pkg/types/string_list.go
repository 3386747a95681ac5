package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList список строк, хранится в БД как JSON-массив в текстовой колонке
type StringList []string

// Value реализует driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan реализует sql.Scanner
func (l *StringList) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("types: cannot scan %T into StringList", src)
	}

	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("types: invalid StringList value: %w", err)
	}
	*l = out
	return nil
}
