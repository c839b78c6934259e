package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "", ErrorCode(nil))
	assert.Equal(t, EINVALID, ErrorCode(Invalid("op", "bad")))
	assert.Equal(t, EUNAVAILABLE, ErrorCode(fmt.Errorf("wrapped: %w", Unavailable(errors.New("dial"), "op"))))
	assert.Equal(t, EINTERNAL, ErrorCode(errors.New("plain")))
}

func TestErrorMessage_HidesInternalDetails(t *testing.T) {
	err := Internal(errors.New("disk on fire"), "storage.put", "could not stage file")
	assert.Equal(t, "An internal error occurred. Please try again later.", ErrorMessage(err))
	assert.Equal(t, "bad", ErrorMessage(Invalid("op", "bad")))
}

func TestError_FormatsWithOp(t *testing.T) {
	assert.Equal(t, "contract.type: unsupported", Invalid("contract.type", "unsupported").Error())
	assert.Equal(t, "contract.type", ErrorOp(Invalid("contract.type", "unsupported")))
	assert.Equal(t, "file exceeds the 10 byte limit", TooLarge("", 10).Error())
}

func TestAddFieldError(t *testing.T) {
	ve := NewValidationError("feedback.submit", "name", "required")
	AddFieldError(ve, "email", "invalid")
	assert.Len(t, ve.Fields, 2)

	fresh := AddFieldError(errors.New("x"), "message", "required")
	assert.Equal(t, map[string]string{"message": "required"}, fresh.Fields)
}
