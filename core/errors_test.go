package core

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsShutdown(t *testing.T) {
	err := NewShutdownError("database connection lost")
	assert.True(t, IsShutdown(err))
	assert.True(t, IsShutdown(errors.Wrap(err, "getting form")))

	assert.False(t, IsShutdown(errors.New("boom")))
	assert.False(t, IsShutdown(NewValidationError(errors.New("bad"), FieldError{Field: "url", Error: "bad"})))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError(errors.New("unknown category"), FieldError{Field: "category_id", Error: "unknown category"})

	vErr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("err = %T; want *ValidationError", err)
	}
	assert.Equal(t, "unknown category", vErr.Error())
	assert.Equal(t, "category_id", vErr.Fields[0].Field)
}
