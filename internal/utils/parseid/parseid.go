package parseid

import "strconv"

// ParseID parses a numeric path or form value. Zero and negatives are
// treated as invalid.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, strconv.ErrSyntax
	}

	return id, nil
}

// ParseOptionalID parses an optional numeric foreign key; empty input
// means null.
func ParseOptionalID(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}

	id, err := ParseID(s)
	if err != nil {
		return nil, err
	}

	return &id, nil
}
