package core_test

import (
	"encoding/json"
	"testing"
	"time"

	"feedsync/internal/core"

	"github.com/stretchr/testify/require"
)

func TestPost_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	expected := time.Date(2024, 5, 1, 10, 40, 0, 0, time.UTC)

	for name, timestamp := range map[string]string{
		"rfc3339":             `"2024-05-01T10:40:00Z"`,
		"rfc3339 with millis": `"2024-05-01T10:40:00.000Z"`,
		"epoch millis":        `1714560000000`,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			post := core.Post{}
			err := json.Unmarshal([]byte(`{"postId":"p1","user":"alice","likes":3,"timestamp":`+timestamp+`}`), &post)
			require.NoError(t, err)

			require.Equal(t, "p1", post.PostID)
			require.Equal(t, "alice", post.User)
			require.Equal(t, 3, post.Likes)
			require.True(t, expected.Equal(post.Timestamp), post.Timestamp)
		})
	}

	t.Run("missing or null timestamp", func(t *testing.T) {
		t.Parallel()

		for _, data := range []string{`{"postId":"p1"}`, `{"postId":"p1","timestamp":null}`} {
			post := core.Post{}
			require.NoError(t, json.Unmarshal([]byte(data), &post))
			require.True(t, post.Timestamp.IsZero())
		}
	})

	t.Run("comment timestamps", func(t *testing.T) {
		t.Parallel()

		post := core.Post{}
		err := json.Unmarshal([]byte(`{"postId":"p1","comments":[
			{"user":"bob","content":"hi","timestamp":1714560000000},
			{"user":"eve","content":"yo","timestamp":"2024-05-01T10:40:00Z"}
		]}`), &post)
		require.NoError(t, err)
		require.Len(t, post.Comments, 2)
		require.True(t, expected.Equal(post.Comments[0].Timestamp))
		require.True(t, expected.Equal(post.Comments[1].Timestamp))
	})

	t.Run("garbage timestamp", func(t *testing.T) {
		t.Parallel()

		post := core.Post{}
		err := json.Unmarshal([]byte(`{"postId":"p1","timestamp":"yesterday"}`), &post)
		require.ErrorIs(t, err, core.ErrInvalidTimestamp)
	})

	t.Run("encodes as rfc3339", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(core.Post{PostID: "p1", Timestamp: expected})
		require.NoError(t, err)
		require.Contains(t, string(data), `"timestamp":"2024-05-01T10:40:00Z"`)
	})
}
