package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTimestamp = errors.New("invalid timestamp")

// parseTimestamp accepts an RFC 3339 string or a number of milliseconds since
// the epoch. A missing or null timestamp is the zero time.
func parseTimestamp(raw json.RawMessage) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}, fmt.Errorf("%w: %w", ErrInvalidTimestamp, err)
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %w", ErrInvalidTimestamp, err)
		}
		return t, nil
	}

	var ms float64
	if err := json.Unmarshal(raw, &ms); err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidTimestamp, raw)
	}
	return time.UnixMilli(int64(ms)).UTC(), nil
}

func (p *Post) UnmarshalJSON(data []byte) error {
	type post Post
	aux := struct {
		*post
		Timestamp json.RawMessage `json:"timestamp"`
	}{post: (*post)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	ts, err := parseTimestamp(aux.Timestamp)
	if err != nil {
		return fmt.Errorf("post %s: %w", p.PostID, err)
	}
	p.Timestamp = ts
	return nil
}

func (c *Comment) UnmarshalJSON(data []byte) error {
	type comment Comment
	aux := struct {
		*comment
		Timestamp json.RawMessage `json:"timestamp"`
	}{comment: (*comment)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	ts, err := parseTimestamp(aux.Timestamp)
	if err != nil {
		return err
	}
	c.Timestamp = ts
	return nil
}
