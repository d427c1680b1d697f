package session

import (
	"encoding/json"
	"errors"
	"time"
)

// payload is the stored representation of a session.
type payload struct {
	CreatedAt time.Time         `json:"created_at"`
	Values    map[string]string `json:"values"`
}

func encode(createdAt time.Time, values map[string]string) ([]byte, error) {
	return json.Marshal(payload{CreatedAt: createdAt, Values: values})
}

func decode(data []byte) (time.Time, map[string]string, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return time.Time{}, nil, errors.Join(ErrDecode, err)
	}
	if p.Values == nil {
		p.Values = make(map[string]string)
	}
	return p.CreatedAt, p.Values, nil
}
