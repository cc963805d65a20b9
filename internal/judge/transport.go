package judge

import (
	"net/http"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
)

// NewHTTPClient returns the client used for judge calls. With tracing enabled every
// outbound request is recorded as an X-Ray subsegment.
func NewHTTPClient(timeout time.Duration, tracing bool) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := &http.Client{Timeout: timeout}
	if tracing {
		return xray.Client(client)
	}
	return client
}
