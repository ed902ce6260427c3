package fetch

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *StatusError
		want string
	}{
		{
			name: "given 404, then the fixed format is produced",
			err:  &StatusError{Status: 404, StatusText: "Not Found"},
			want: "fetch: Request failed with status 404: Not Found",
		},
		{
			name: "given 503, then the fixed format is produced",
			err:  &StatusError{Status: 503, StatusText: "Service Unavailable"},
			want: "fetch: Request failed with status 503: Service Unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestContentTypeError_Message(t *testing.T) {
	err := &ContentTypeError{ContentType: "application/csv"}
	assert.Equal(t, "fetch: Unsupported response content type: application/csv", err.Error())
}

func TestStatusText(t *testing.T) {
	tests := []struct {
		name string
		resp *http.Response
		want string
	}{
		{
			name: "given a standard status line, then the code prefix is stripped",
			resp: &http.Response{StatusCode: 404, Status: "404 Not Found"},
			want: "Not Found",
		},
		{
			name: "given a bare reason phrase, then it passes through",
			resp: &http.Response{StatusCode: 404, Status: "Not Found"},
			want: "Not Found",
		},
		{
			name: "given an empty status, then the standard phrase is used",
			resp: &http.Response{StatusCode: 502},
			want: "Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusText(tt.resp))
		})
	}
}
