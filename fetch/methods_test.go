package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func TestPost_JSONRoundTrip(t *testing.T) {
	sent := testUser{Name: "Ada Lovelace", Email: "ada@example.com"}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var received testUser
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		received.ID = 7

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		require.NoError(t, json.NewEncoder(w).Encode(received))
	}))
	defer server.Close()

	client := New()
	var created testUser
	resp, err := client.Post(context.Background(), server.URL, sent, &RequestOptions{Into: &created})

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 7, created.ID)
	assert.Equal(t, sent.Name, created.Name)
	assert.Equal(t, sent.Email, created.Email)
}

func TestSend_ContentTypeInjection(t *testing.T) {
	t.Run("given no explicit header, then application/json is injected", func(t *testing.T) {
		mock := NewMockTransport().StubJSON(http.StatusOK, map[string]string{})
		client := New(WithTransport(mock))

		_, err := client.Put(context.Background(), "https://example.com/x", map[string]int{"a": 1}, nil)

		require.NoError(t, err)
		assert.Equal(t, "application/json", mock.LastRequest().Header.Get("Content-Type"))
	})

	t.Run("given an explicit per-request header, then it wins over the injected one", func(t *testing.T) {
		mock := NewMockTransport().StubJSON(http.StatusOK, map[string]string{})
		client := New(WithTransport(mock))

		_, err := client.Patch(context.Background(), "https://example.com/x", map[string]int{"a": 1},
			&RequestOptions{Header: http.Header{"Content-Type": {"application/merge-patch+json"}}})

		require.NoError(t, err)
		assert.Equal(t, "application/merge-patch+json", mock.LastRequest().Header.Get("Content-Type"))
	})

	t.Run("given a nil payload, then no body is sent", func(t *testing.T) {
		mock := NewMockTransport().StubJSON(http.StatusOK, map[string]string{})
		client := New(WithTransport(mock))

		_, err := client.Post(context.Background(), "https://example.com/x", nil, nil)

		require.NoError(t, err)
		assert.Nil(t, mock.LastRequest().Body)
	})
}

func TestFacade_MethodSelection(t *testing.T) {
	tests := []struct {
		name string
		call func(c *Client, ctx context.Context, url string) (*Response, error)
		want string
	}{
		{"given Get, then GET", func(c *Client, ctx context.Context, url string) (*Response, error) {
			return c.Get(ctx, url, nil)
		}, http.MethodGet},
		{"given Head, then HEAD", func(c *Client, ctx context.Context, url string) (*Response, error) {
			return c.Head(ctx, url, nil)
		}, http.MethodHead},
		{"given Options, then OPTIONS", func(c *Client, ctx context.Context, url string) (*Response, error) {
			return c.Options(ctx, url, nil)
		}, http.MethodOptions},
		{"given Delete, then DELETE", func(c *Client, ctx context.Context, url string) (*Response, error) {
			return c.Delete(ctx, url, nil)
		}, http.MethodDelete},
		{"given Post, then POST", func(c *Client, ctx context.Context, url string) (*Response, error) {
			return c.Post(ctx, url, nil, nil)
		}, http.MethodPost},
		{"given Put, then PUT", func(c *Client, ctx context.Context, url string) (*Response, error) {
			return c.Put(ctx, url, nil, nil)
		}, http.MethodPut},
		{"given Patch, then PATCH", func(c *Client, ctx context.Context, url string) (*Response, error) {
			return c.Patch(ctx, url, nil, nil)
		}, http.MethodPatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockTransport().StubText(http.StatusOK, "ok")
			client := New(WithTransport(mock))

			_, err := tt.call(client, context.Background(), "https://example.com/x")

			require.NoError(t, err)
			assert.Equal(t, tt.want, mock.LastRequest().Method)
		})
	}
}

func TestTypedHelpers(t *testing.T) {
	t.Run("given a JSON response, then Get decodes into T", func(t *testing.T) {
		t.Cleanup(ResetDefault)
		SetDefault(New(WithTransport(
			NewMockTransport().StubJSON(http.StatusOK, testUser{ID: 1, Name: "Ada"}),
		)))

		user, err := Get[testUser](context.Background(), "https://example.com/users/1", nil)

		require.NoError(t, err)
		assert.Equal(t, 1, user.ID)
		assert.Equal(t, "Ada", user.Name)
	})

	t.Run("given a text response, then Get returns the string", func(t *testing.T) {
		t.Cleanup(ResetDefault)
		SetDefault(New(WithTransport(NewMockTransport().StubText(http.StatusOK, "pong"))))

		body, err := Get[string](context.Background(), "https://example.com/ping", nil)

		require.NoError(t, err)
		assert.Equal(t, "pong", body)
	})

	t.Run("given a declared failure, then the zero value and error return", func(t *testing.T) {
		t.Cleanup(ResetDefault)
		SetDefault(New(WithTransport(NewMockTransport().StubText(http.StatusBadRequest, "nope"))))

		user, err := Get[testUser](context.Background(), "https://example.com/users/1", nil)

		require.Error(t, err)
		assert.Zero(t, user)
	})

	t.Run("given Post with payload, then body and decode both work", func(t *testing.T) {
		t.Cleanup(ResetDefault)
		mock := NewMockTransport().StubJSON(http.StatusOK, testUser{ID: 9, Name: "Grace"})
		SetDefault(New(WithTransport(mock)))

		user, err := Post[testUser](context.Background(), "https://example.com/users",
			testUser{Name: "Grace"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 9, user.ID)
		assert.Equal(t, "application/json", mock.LastRequest().Header.Get("Content-Type"))
	})

	t.Run("given Head, then the zero value returns without error", func(t *testing.T) {
		t.Cleanup(ResetDefault)
		SetDefault(New(WithTransport(NewMockTransport().StubResponse(http.StatusOK, "", ""))))

		out, err := Head[struct{}](context.Background(), "https://example.com/x", nil)

		require.NoError(t, err)
		assert.Zero(t, out)
	})
}
