package failure_test

import (
	"errors"
	"fmt"
	"micelio/shared/failure"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{Code: http.StatusBadRequest, Message: "guest_name is required"}

	assert.Equal(t, "guest_name is required", f.Error())
}

func TestPredefinedFailures(t *testing.T) {
	assert.Equal(t, http.StatusConflict, failure.ReservedDatesError.Code)
	assert.Equal(t, "room is already reserved for these dates", failure.ReservedDatesError.Message)
	assert.Equal(t, http.StatusBadRequest, failure.InvalidDateRangeError.Code)
	assert.Equal(t, http.StatusForbidden, failure.ForbiddenError.Code)
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("bad body")), code: http.StatusBadRequest, msg: "bad body"},
		{name: "bad request from string", err: failure.BadRequestFromString("bad dates"), code: http.StatusBadRequest, msg: "bad dates"},
		{name: "internal", err: failure.InternalError(errors.New("boom")), code: http.StatusInternalServerError, msg: "boom"},
		{name: "not found", err: failure.NotFound("booking not found"), code: http.StatusNotFound, msg: "booking not found"},
		{name: "conflict", err: failure.Conflict("taken"), code: http.StatusConflict, msg: "taken"},
		{name: "forbidden", err: failure.Forbidden("nope"), code: http.StatusForbidden, msg: "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(nil))

	wrapped := fmt.Errorf("update booking: %w", failure.NotFound("booking not found"))
	assert.Equal(t, http.StatusNotFound, failure.GetCode(wrapped))
}

func TestIs(t *testing.T) {
	wrapped := fmt.Errorf("create booking: %w", failure.ReservedDatesError)

	assert.True(t, failure.Is(wrapped, http.StatusConflict))
	assert.False(t, failure.Is(wrapped, http.StatusNotFound))
	assert.False(t, failure.Is(errors.New("plain"), http.StatusConflict))
}
