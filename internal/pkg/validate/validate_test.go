package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type payload struct {
	UserID  string `json:"userId" validate:"required"`
	Content string `json:"content" validate:"required"`
	Rating  int    `json:"rating" validate:"max=5"`
}

func TestStructOK(t *testing.T) {
	assert.NoError(t, Struct(payload{UserID: "u1", Content: "hi", Rating: 4}))
}

func TestStructMissingFields(t *testing.T) {
	err := Struct(payload{Rating: 3})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "userId is required")
	assert.Contains(t, err.Error(), "content is required")
}

func TestStructMax(t *testing.T) {
	err := Struct(payload{UserID: "u1", Content: "x", Rating: 9})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rating must be at most 5")
}
