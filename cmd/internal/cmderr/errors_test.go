package cmderr

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithCode(t *testing.T) {
	require.NoError(t, WithCode(CodeNotFound, nil))

	cause := errors.New("missing")
	err := fmt.Errorf("get: %w", WithCode(CodeNotFound, cause))

	require.ErrorIs(t, err, cause)

	var e ExitErr
	require.ErrorAs(t, err, &e)
	require.Equal(t, CodeNotFound, e.Code)
	require.Equal(t, "get: missing", err.Error())
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer

	require.Equal(t, CodeFailure, report(&buf, errors.New("some failure")))
	require.Equal(t, "Error: some failure\n", buf.String())

	buf.Reset()

	require.Equal(t, CodeNotFound, report(&buf, WithCode(CodeNotFound, errors.New("no chunk"))))
	require.Equal(t, "Error: no chunk\n", buf.String())
}
