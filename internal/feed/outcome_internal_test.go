package feed

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"feedsync/internal/core"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		err      error
		expected outcome
	}{
		"nil":        {nil, outcomeApplied},
		"validation": {ErrBlankCredentials, outcomeRejectedLocally},
		"session":    {ErrNotSignedIn, outcomeRejectedLocally},
		"ownership":  {fmt.Errorf("deleting: %w", ErrNotOwner), outcomeRejectedLocally},
		"service":    {&RejectedError{Message: "nope"}, outcomeRejectedByService},
		"transport":  {errors.New("dial tcp: refused"), outcomeTransportFailed},
		"no posts":   {fmt.Errorf("%w: db down", core.ErrMalformedFeed), outcomeNoPosts},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.expected, classify(tc.err))
		})
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	transport := errors.New("timeout")

	require.NoError(t, check(core.Ack{Success: true}, nil))
	require.ErrorIs(t, check(core.Ack{}, transport), transport)

	var rejected *RejectedError
	require.ErrorAs(t, check(core.Ack{Message: "taken"}, nil), &rejected)
	require.Equal(t, "taken", rejected.Message)
}

func TestFailureBody(t *testing.T) {
	t.Parallel()

	require.Equal(t, "taken", failureBody(&RejectedError{Message: "taken"}, "Failed"))
	require.Equal(t, "Failed", failureBody(&RejectedError{}, "Failed"))
	require.Equal(t, "Failed: timeout", failureBody(errors.New("timeout"), "Failed"))
}
