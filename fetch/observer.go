package fetch

import (
	"context"
	"net/http"
)

// Observer receives lifecycle notifications for a single request.
//
// All fields are optional; a nil field is simply skipped. The shape follows
// httptrace.ClientTrace: a struct of optional callbacks rather than an
// interface, so callers only supply the hooks they care about.
//
// For one request the hooks fire in a fixed order:
//
//	OnRequest -> (network dispatch) -> OnResponse or OnError
//
// OnResponse fires for 2xx responses and OnError for failures. The one
// overlap is a decode failure: the exchange itself succeeded, so OnResponse
// fires first and OnError follows with the decode error. OnRequest may
// mutate the request (e.g. inject headers) before dispatch.
//
// A per-request Observer set on RequestOptions entirely supersedes the
// client-wide observer for that call; observer scopes are never merged.
// Use ChainObservers to recombine hooks explicitly.
type Observer struct {
	// OnRequest is invoked after option merging, immediately before the
	// network dispatch. The request reflects the fully merged (effective)
	// options.
	OnRequest func(ctx context.Context, req *http.Request)

	// OnResponse is invoked for successful (2xx) responses, before the
	// body is decoded. The response body has not been consumed yet.
	OnResponse func(ctx context.Context, resp *http.Response)

	// OnError is invoked exactly once for any failure: transport errors,
	// declared HTTP failures, and decode failures. The error is then
	// returned to the caller unchanged.
	OnError func(ctx context.Context, url string, err error)
}

func (o Observer) request(ctx context.Context, req *http.Request) {
	if o.OnRequest != nil {
		o.OnRequest(ctx, req)
	}
}

func (o Observer) response(ctx context.Context, resp *http.Response) {
	if o.OnResponse != nil {
		o.OnResponse(ctx, resp)
	}
}

func (o Observer) failure(ctx context.Context, url string, err error) {
	if o.OnError != nil {
		o.OnError(ctx, url, err)
	}
}

// ChainObservers combines several observers into one. Each hook invokes the
// corresponding hooks of all chained observers in order.
//
// Setting a client-wide or per-request observer always replaces the previous
// one wholesale; chaining is the explicit way to keep existing hooks:
//
//	client.SetObserver(fetch.ChainObservers(existing, extra))
func ChainObservers(observers ...Observer) Observer {
	return Observer{
		OnRequest: func(ctx context.Context, req *http.Request) {
			for _, o := range observers {
				o.request(ctx, req)
			}
		},
		OnResponse: func(ctx context.Context, resp *http.Response) {
			for _, o := range observers {
				o.response(ctx, resp)
			}
		},
		OnError: func(ctx context.Context, url string, err error) {
			for _, o := range observers {
				o.failure(ctx, url, err)
			}
		},
	}
}
