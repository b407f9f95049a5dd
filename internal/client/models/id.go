// Package models holds the client-side view of the QuizForge backend's data
// model: sessions, questions, identities, and call parameters.
package models

import (
	"bytes"
	"encoding/json"
)

// ID is a server-assigned opaque identifier. The backend serializes ids as
// JSON numbers; the client never interprets them, so they are kept as
// strings. UnmarshalJSON accepts both representations.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }
