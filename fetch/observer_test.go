package fetch

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserver_NilHooks(t *testing.T) {
	// An empty observer must be dispatchable on every path.
	var o Observer
	o.request(context.Background(), &http.Request{})
	o.response(context.Background(), &http.Response{})
	o.failure(context.Background(), "https://example.com", assert.AnError)
}

func TestChainObservers(t *testing.T) {
	t.Run("given two observers, then hooks fire in order", func(t *testing.T) {
		var order []string
		first := Observer{
			OnRequest: func(context.Context, *http.Request) { order = append(order, "first") },
		}
		second := Observer{
			OnRequest: func(context.Context, *http.Request) { order = append(order, "second") },
		}

		chained := ChainObservers(first, second)
		chained.request(context.Background(), &http.Request{})

		assert.Equal(t, []string{"first", "second"}, order)
	})

	t.Run("given a mixed chain, then missing hooks are skipped", func(t *testing.T) {
		var errCount int
		chained := ChainObservers(
			Observer{},
			Observer{OnError: func(context.Context, string, error) { errCount++ }},
		)

		chained.failure(context.Background(), "https://example.com", assert.AnError)
		chained.response(context.Background(), &http.Response{})

		assert.Equal(t, 1, errCount)
	})
}

func TestCorrelationObserver(t *testing.T) {
	mock := NewMockTransport().StubText(http.StatusOK, "ok")
	client := New(
		WithTransport(mock),
		WithObserver(CorrelationObserver("X-Request-Id")),
	)

	_, err := client.Get(context.Background(), "https://example.com/a", nil)
	require.NoError(t, err)
	_, err = client.Get(context.Background(), "https://example.com/b", nil)
	require.NoError(t, err)

	requests := mock.Requests()
	require.Len(t, requests, 2)

	firstID := requests[0].Header.Get("X-Request-Id")
	secondID := requests[1].Header.Get("X-Request-Id")

	_, err = uuid.Parse(firstID)
	assert.NoError(t, err)
	assert.NotEqual(t, firstID, secondID)
}

func TestObserver_SeesEffectiveRequest(t *testing.T) {
	// OnRequest must observe the merged options, not the raw per-call ones.
	var seen http.Header
	client := New(
		WithTransport(NewMockTransport().StubText(http.StatusOK, "ok")),
		WithHeader("X-Global", "g"),
		WithObserver(Observer{
			OnRequest: func(_ context.Context, req *http.Request) {
				seen = req.Header.Clone()
			},
		}),
	)

	_, err := client.Get(context.Background(), "https://example.com/x", &RequestOptions{
		Header: http.Header{"X-Local": {"l"}},
		Query:  url.Values{"q": {"1"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "g", seen.Get("X-Global"))
	assert.Equal(t, "l", seen.Get("X-Local"))
}
