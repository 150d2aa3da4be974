package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// flexID accepts identifiers encoded as JSON strings or numbers.
type flexID string

func (id *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return fmt.Errorf("identifier is null")
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("identifier must be a string or number: %w", err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("identifier must be a string or number: %w", err)
	}
	*id = flexID(n.String())
	return nil
}

// Response schemas. Pointer fields distinguish "absent" from the zero value.

type toggleResponse struct {
	Complete *bool   `json:"complete" validate:"required"`
	TID      *flexID `json:"tid" validate:"required"`
}

type deleteResponse struct {
	DeleteSuccess *bool   `json:"delete_success" validate:"required"`
	TID           *flexID `json:"tid" validate:"required"`
}

type editResponse struct {
	Task *editedTask `json:"task"`
}

type editedTask struct {
	ID          *flexID `json:"id" validate:"required"`
	Title       *string `json:"title" validate:"required"`
	Description *string `json:"description" validate:"required"`
}

type publishResponse struct {
	Publish *bool `json:"publish" validate:"required"`
}

type registerResponse struct {
	RegisterSuccess *bool `json:"register_success"`
}
