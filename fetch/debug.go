package fetch

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// debugLogger is the package-level zerolog logger for debug output.
var debugLogger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// logRequest logs the request details using zerolog.
func logRequest(logger zerolog.Logger, req *http.Request) {
	logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("host", req.Host).
		Msg("fetch request")
}

// logResponse logs the response details using zerolog.
func logResponse(logger zerolog.Logger, resp *http.Response, duration time.Duration) {
	logger.Debug().
		Int("status", resp.StatusCode).
		Str("status_text", resp.Status).
		Dur("duration_ms", duration).
		Int64("content_length", resp.ContentLength).
		Msg("fetch response")
}

// LoggingObserver builds an Observer that logs the full request lifecycle
// with the given zerolog logger: one debug line per request and response,
// one error line per failure.
//
//	client.SetObserver(fetch.LoggingObserver(log.With().Str("component", "api").Logger()))
func LoggingObserver(logger zerolog.Logger) Observer {
	return Observer{
		OnRequest: func(_ context.Context, req *http.Request) {
			logRequest(logger, req)
		},
		OnResponse: func(_ context.Context, resp *http.Response) {
			logger.Debug().
				Int("status", resp.StatusCode).
				Str("status_text", resp.Status).
				Msg("fetch response")
		},
		OnError: func(_ context.Context, url string, err error) {
			logger.Error().
				Err(err).
				Str("url", url).
				Msg("fetch request failed")
		},
	}
}

// CorrelationObserver builds an Observer that stamps every outgoing request
// with a fresh UUID in the given header, for correlating client and server
// logs.
//
//	client.SetObserver(fetch.ChainObservers(
//	    fetch.CorrelationObserver("X-Request-ID"),
//	    fetch.LoggingObserver(logger),
//	))
func CorrelationObserver(headerName string) Observer {
	return Observer{
		OnRequest: func(_ context.Context, req *http.Request) {
			req.Header.Set(headerName, uuid.NewString())
		},
	}
}
