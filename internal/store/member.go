package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// errTrailingData rejects members holding more than one JSON value.
var errTrailingData = errors.New("trailing data after JSON value")

// decodeMember decodes one stored list or sorted-set member. Anything after
// the first value other than whitespace is an error, as with json.Unmarshal.
func decodeMember[T any](member string) (T, error) {
	var v T
	dec := json.NewDecoder(strings.NewReader(member))
	if err := dec.Decode(&v); err != nil {
		return v, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return v, errTrailingData
	}
	return v, nil
}

// encodeMember is the inverse of decodeMember.
func encodeMember(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode member: %w", err)
	}
	return string(data), nil
}
