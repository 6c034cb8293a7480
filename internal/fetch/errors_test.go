package fetch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewError_DefaultRetryability(t *testing.T) {
	tests := []struct {
		kind      Kind
		retryable bool
	}{
		{KindNetwork, true},
		{KindTimeout, true},
		{KindServer, true},
		{KindNotFound, false},
		{KindRateLimit, false},
		{KindParse, false},
		{KindValidation, false},
		{KindUnknown, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.retryable, NewError(tt.kind, nil).Retryable)
		})
	}
}

func TestStatusError_Classification(t *testing.T) {
	tests := []struct {
		status int
		kind   Kind
	}{
		{404, KindNotFound},
		{429, KindRateLimit},
		{500, KindServer},
		{503, KindServer},
		{400, KindValidation},
		{403, KindValidation},
		{301, KindUnknown},
	}

	for _, tt := range tests {
		e := statusError(tt.status)
		assert.Equal(t, tt.kind, e.Kind, "status %d", tt.status)
		assert.Equal(t, tt.status, e.Status)
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	e := NewError(KindNetwork, cause)
	assert.ErrorIs(t, e, cause)
	assert.Contains(t, e.Error(), "NETWORK")
	assert.Contains(t, e.Error(), "connection refused")
}

func TestError_User_EveryKindHasCopy(t *testing.T) {
	kinds := []Kind{
		KindNetwork, KindTimeout, KindServer, KindNotFound,
		KindRateLimit, KindParse, KindValidation, KindUnknown,
	}
	for _, k := range kinds {
		m := NewError(k, nil).User()
		assert.NotEmpty(t, m.Title, "kind %s", k)
		assert.NotEmpty(t, m.Message, "kind %s", k)
		assert.NotEmpty(t, m.Action, "kind %s", k)
	}
}

func TestError_User_UnknownKindFallsBack(t *testing.T) {
	e := &Error{Kind: Kind("WEIRD")}
	assert.Equal(t, userMessages[KindUnknown], e.User())
}

func TestValidation(t *testing.T) {
	e := Validation("latitude %v out of range", 91.0)
	assert.Equal(t, KindValidation, e.Kind)
	assert.False(t, e.Retryable)
	assert.Contains(t, e.Error(), "latitude 91 out of range")
}
