package swap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		message string
		want    FailureKind
	}{
		{"insufficient balance for transfer", KindInsufficientBalance},
		{"transfer amount exceeds balance", KindInsufficientBalance},
		{"UniswapV2Router: EXPIRED", KindDeadlineExpired},
		{"UniswapV2Router: EXCESSIVE_INPUT_AMOUNT", KindSlippageExceeded},
		{"execution reverted", KindReverted},
		{"something nobody has seen before", KindUnclassified},
	}

	for _, tc := range cases {
		cause := errors.New(tc.message)
		err := Classify(cause)

		var execErr *ExecutionError
		require.ErrorAs(t, err, &execErr, "message %q", tc.message)
		assert.Equal(t, tc.want, execErr.Kind, "message %q", tc.message)
		assert.NotEmpty(t, execErr.Suggestion, "message %q", tc.message)
		assert.ErrorIs(t, err, cause, "classification must preserve the cause")
	}
}

func TestClassifyNil(t *testing.T) {
	assert.NoError(t, Classify(nil))
}

func TestClassifyPrefersSpecificKindOverRevert(t *testing.T) {
	err := Classify(errors.New("execution reverted: UniswapV2Router: EXPIRED"))

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, KindDeadlineExpired, execErr.Kind)
}
