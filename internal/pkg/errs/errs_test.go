package errs_test

import (
	"errors"
	"testing"

	"dispatchsim/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("courierId", "123")

		assert.Equal(t, "courierId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("actor stopped")
		err := errs.NewObjectNotFoundErrorWithCause("courierId", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: courierId, ID is: 123 (cause: actor stopped)",
			err.Error())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", 456)
		assert.Equal(t, "object not found: 456", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("location")

		assert.Equal(t, "location", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: location", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("unknown symbol")
		err := errs.NewValueIsInvalidErrorWithCause("location", cause)

		assert.Equal(t, "value is invalid: location (cause: unknown symbol)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("leaves", 7, 0, 5)

		assert.Equal(t, "leaves", err.ParamName)
		assert.Equal(t, 7, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 5, err.Max)
		assert.Equal(t, "value is out of range: leaves is 7, min value is 0, max value is 5", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("pool too small")
		err := errs.NewValueIsOutOfRangeErrorWithCause("leaves", -1, 0, 5, cause)

		assert.Equal(t,
			"value is out of range: leaves is -1, min value is 0, max value is 5 (cause: pool too small)",
			err.Error())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("router")

	assert.Equal(t, "value is required: router", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	withCause := errs.NewValueIsRequiredErrorWithCause("router", errors.New("nil pid"))
	assert.Equal(t, "value is required: router (cause: nil pid)", withCause.Error())
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	require.ErrorIs(t, errs.NewObjectNotFoundError("id", "1"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("x"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsOutOfRangeError("x", 1, 2, 3), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, errs.NewValueIsRequiredError("x"), errs.ErrValueIsRequired)
}
