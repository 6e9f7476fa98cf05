package result_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/mediator/result"
)

func TestSuccess(t *testing.T) {
	r := result.Success(42)

	assert.True(t, r.IsSuccess())
	assert.False(t, r.IsFailure())
	assert.Equal(t, 42, r.Value())
	require.NoError(t, r.Err())
	assert.Empty(t, r.Code())
}

func TestFailure(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantErr  error
		wantCode string
	}{
		{
			name:    "plain error",
			err:     errors.New("boom"),
			wantErr: nil,
		},
		{
			name:    "nil error becomes ErrNone",
			err:     nil,
			wantErr: result.ErrNone,
		},
		{
			name:     "errx error exposes code",
			err:      errx.New("user not found", errx.WithCode("USER_NOT_FOUND")),
			wantCode: "USER_NOT_FOUND",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := result.Failure[string](tc.err)

			assert.True(t, r.IsFailure())
			assert.Empty(t, r.Value())
			require.Error(t, r.Err())

			if tc.wantErr != nil {
				require.ErrorIs(t, r.Err(), tc.wantErr)
			}
			assert.Equal(t, tc.wantCode, r.Code())
		})
	}
}

func TestOkAndFail(t *testing.T) {
	assert.True(t, result.Ok().IsSuccess())

	r := result.Fail(errors.New("denied"))
	assert.True(t, r.IsFailure())
	assert.EqualError(t, r.Err(), "denied")
}

func TestValueOr(t *testing.T) {
	assert.Equal(t, "v", result.Success("v").ValueOr("fallback"))
	assert.Equal(t, "fallback", result.Failure[string](errors.New("x")).ValueOr("fallback"))
}

func TestMap(t *testing.T) {
	mapped := result.Map(result.Success(7), strconv.Itoa)
	assert.Equal(t, "7", mapped.Value())

	cause := errors.New("lookup failed")
	failed := result.Map(result.Failure[int](cause), strconv.Itoa)
	require.ErrorIs(t, failed.Err(), cause)
}

func TestOutcome(t *testing.T) {
	var o result.Outcome = result.Failure[int](nil)

	assert.False(t, o.IsSuccess())
	require.ErrorIs(t, o.Err(), result.ErrNone)
}
