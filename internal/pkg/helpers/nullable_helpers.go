package helpers

import "strconv"

// NullableString returns nil for an empty or nil string, otherwise a copy of its value.
func NullableString(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

// NullableIntString renders an optional integer as an optional string.
func NullableIntString(i *int) *string {
	if i == nil {
		return nil
	}
	v := strconv.Itoa(*i)
	return &v
}

// ParseOptionalInt64 parses a query-string value. Empty and "0" mean "not given"
// and yield nil without error.
func ParseOptionalInt64(s string) (*int64, error) {
	if s == "" || s == "0" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ParseOptionalInt is ParseOptionalInt64 for int values.
func ParseOptionalInt(s string) (*int, error) {
	v, err := ParseOptionalInt64(s)
	if err != nil || v == nil {
		return nil, err
	}
	i := int(*v)
	return &i, nil
}
