package feedapi

import (
	"log/slog"
	"net/url"

	"resty.dev/v3"
)

// LogResponses logs every finished request at debug level.
func LogResponses(logger *slog.Logger) resty.ResponseMiddleware {
	return func(_ *resty.Client, response *resty.Response) error {
		reqURL, err := url.Parse(response.Request.URL)
		if err != nil {
			return err
		}

		logger.Debug("api request",
			"method", response.Request.Method,
			"path", reqURL.Path,
			"status", response.Status(),
			"duration", response.Duration(),
		)
		return nil
	}
}
