package models

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"gorm.io/gorm/schema"
)

// ISOLayout is the UTC, millisecond layout sale and scrap dates are stored in.
// Strings in this layout sort the same way as the instants they encode.
const ISOLayout = "2006-01-02T15:04:05.000Z"

func init() {
	schema.RegisterSerializer("isotime", ISOTimeSerializer{})
}

// ISOTimestamp formats t for a VARCHAR date column or a comparison against one.
func ISOTimestamp(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// ParseISOTimestamp reads a stored date. Empty strings decode to the zero time.
func ParseISOTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// ISOTimeSerializer maps a time.Time field onto a VARCHAR column holding ISO strings.
type ISOTimeSerializer struct{}

func (ISOTimeSerializer) Scan(ctx context.Context, field *schema.Field, dst reflect.Value, dbValue any) error {
	var (
		t   time.Time
		err error
	)
	switch v := dbValue.(type) {
	case nil:
	case time.Time:
		t = v.UTC()
	case []byte:
		t, err = ParseISOTimestamp(string(v))
	case string:
		t, err = ParseISOTimestamp(v)
	default:
		err = fmt.Errorf("unsupported value %T", dbValue)
	}
	if err != nil {
		return fmt.Errorf("field %s: %w", field.Name, err)
	}
	return field.Set(ctx, dst, t)
}

func (ISOTimeSerializer) Value(_ context.Context, field *schema.Field, _ reflect.Value, fieldValue any) (any, error) {
	t, ok := fieldValue.(time.Time)
	if !ok {
		return nil, fmt.Errorf("field %s: expected time.Time, got %T", field.Name, fieldValue)
	}
	return ISOTimestamp(t), nil
}
