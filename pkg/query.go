package pkg

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

const DateLayout = "2006-01-02"

// QueryDate parses an optional yyyy-mm-dd query param. Missing param gives nil.
func QueryDate(values url.Values, key string) (*time.Time, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("param %s: %w", key, err)
	}
	return &t, nil
}

// QueryInt parses an optional integer query param, returning def when missing.
func QueryInt(values url.Values, key string, def int) (int, error) {
	raw := values.Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("param %s: %w", key, err)
	}
	return v, nil
}

// QueryBool parses an optional boolean query param into a tri-state.
func QueryBool(values url.Values, key string) (*bool, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("param %s: %w", key, err)
	}
	return &v, nil
}
