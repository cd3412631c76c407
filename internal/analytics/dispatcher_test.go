package analytics

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher(t *testing.T) {
	t.Run("Runs submitted jobs and drains on close", func(t *testing.T) {
		d := NewDispatcher(10, 2, time.Second)
		var ran atomic.Int32
		for i := 0; i < 5; i++ {
			assert.True(t, d.Submit("count", func(ctx context.Context) { ran.Add(1) }))
		}

		require.NoError(t, d.Close(context.Background()))
		assert.Equal(t, int32(5), ran.Load())
	})

	t.Run("Drops when full without blocking", func(t *testing.T) {
		d := NewDispatcher(1, 1, time.Second)
		release := make(chan struct{})
		started := make(chan struct{})

		require.True(t, d.Submit("block", func(ctx context.Context) {
			close(started)
			<-release
		}))
		<-started
		require.True(t, d.Submit("queued", func(ctx context.Context) {}))
		assert.False(t, d.Submit("dropped", func(ctx context.Context) {}))

		close(release)
		require.NoError(t, d.Close(context.Background()))
	})

	t.Run("Rejects after close", func(t *testing.T) {
		d := NewDispatcher(1, 1, time.Second)
		require.NoError(t, d.Close(context.Background()))
		assert.False(t, d.Submit("late", func(ctx context.Context) {}))
		require.NoError(t, d.Close(context.Background()))
	})

	t.Run("Survives a panicking job", func(t *testing.T) {
		d := NewDispatcher(2, 1, time.Second)
		var ran atomic.Bool
		d.Submit("panic", func(ctx context.Context) { panic("boom") })
		d.Submit("after", func(ctx context.Context) { ran.Store(true) })

		require.NoError(t, d.Close(context.Background()))
		assert.True(t, ran.Load())
	})
}

func TestForwarder_ReportExchange(t *testing.T) {
	t.Run("Resolves context then posts message and tokens", func(t *testing.T) {
		server, calls := newDashboard(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/v1/gpt/contexts" {
				_, _ = w.Write([]byte(`{"contextId": 7}`))
				return
			}
			w.WriteHeader(http.StatusCreated)
		})
		d := NewDispatcher(4, 1, time.Second)
		f := NewForwarder(NewClient(server.URL, "k", "p"), d)

		f.ReportExchange(context.Background(), Exchange{
			ConversationID: "session-1",
			MessageID:      "msg-1",
			Prompt:         "Q",
			Reply:          "A",
			ClientTopic:    "Others",
			AudioDuration:  0.25,
			TotalTokens:    99,
		})
		require.NoError(t, d.Close(context.Background()))

		require.Len(t, *calls, 3)
		assert.Equal(t, "/v1/gpt/contexts", (*calls)[0].path)
		message := (*calls)[1]
		assert.Equal(t, "/v1/gpt/messages", message.path)
		assert.EqualValues(t, 7, message.body["context"])
		assert.Equal(t, []any{float64(7)}, message.body["contexts"])
		assert.EqualValues(t, 0.25, message.body["audioDuration"])
		assert.Equal(t, "/v1/gpt/tokens", (*calls)[2].path)
		assert.EqualValues(t, 99, (*calls)[2].body["amount"])
	})

	t.Run("Context failure still posts with null context", func(t *testing.T) {
		server, calls := newDashboard(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/v1/gpt/contexts" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
		})
		d := NewDispatcher(4, 1, time.Second)
		f := NewForwarder(NewClient(server.URL, "k", "p"), d)

		f.ReportExchange(context.Background(), Exchange{ConversationID: "s", MessageID: "m", ClientTopic: "Others"})
		require.NoError(t, d.Close(context.Background()))

		require.Len(t, *calls, 3)
		assert.Nil(t, (*calls)[1].body["context"])
	})

	t.Run("Feedback", func(t *testing.T) {
		server, calls := newDashboard(t, nil)
		d := NewDispatcher(4, 1, time.Second)
		f := NewForwarder(NewClient(server.URL, "k", "p"), d)

		f.ReportFeedback(context.Background(), "s", "m", 1)
		require.NoError(t, d.Close(context.Background()))

		require.Len(t, *calls, 1)
		assert.Equal(t, http.MethodPatch, (*calls)[0].method)
	})
}
