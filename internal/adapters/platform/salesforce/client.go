package salesforce

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/clbanning/mxj/v2"
	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"
	"github.com/tidwall/gjson"

	"github.com/olusolaa/picklist-drift-detector/internal/core/ports"
)

const (
	DefaultAPIVersion = "60.0"
	userAgent         = "picklist-drift-detector"
	maxRetries        = 3
)

// Client talks to one org over the Metadata SOAP API and the REST API. Calls
// are rate limited per org and transient failures are retried.
type Client struct {
	http       *resty.Client
	session    SessionSource
	apiVersion string
	limiter    *apiLimiter
	logger     ports.Logger
	newBackoff func() retry.Backoff
}

type ClientOption func(*Client)

// WithBackoff replaces the retry schedule. The function is called once per
// logical call since backoffs carry state.
func WithBackoff(newBackoff func() retry.Backoff) ClientOption {
	return func(c *Client) {
		c.newBackoff = newBackoff
	}
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = resty.NewWithClient(hc).SetHeader("User-Agent", userAgent)
	}
}

// NewClient builds a client. An empty apiVersion defers to the version the
// session reports, then DefaultAPIVersion.
func NewClient(session SessionSource, apiVersion string, rps int, timeout time.Duration, logger ports.Logger, opts ...ClientOption) *Client {
	c := &Client{
		http:       resty.New().SetHeader("User-Agent", userAgent),
		session:    session,
		apiVersion: apiVersion,
		limiter:    newAPILimiter(rps, logger),
		logger:     logger,
		newBackoff: func() retry.Backoff {
			return retry.WithMaxRetries(maxRetries, retry.NewExponential(200*time.Millisecond))
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if timeout > 0 {
		c.http.SetTimeout(timeout)
	}
	return c
}

func (c *Client) version(s Session) string {
	switch {
	case c.apiVersion != "":
		return c.apiVersion
	case s.APIVersion != "":
		return s.APIVersion
	}
	return DefaultAPIVersion
}

// call resolves the session, then runs fn under the rate limiter with retries.
// The returned error is already classified into an application error.
func (c *Client) call(ctx context.Context, operation, subject string, fn func(ctx context.Context, s Session) ([]byte, error)) ([]byte, error) {
	session, err := c.session.Session(ctx)
	if err != nil {
		return nil, err
	}

	var body []byte
	attempt := 0
	err = retry.Do(ctx, c.newBackoff(), func(ctx context.Context) error {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		b, err := fn(ctx, session)
		if err != nil {
			if isRetryable(err) {
				c.logger.Debugf(ctx, "Salesforce %s for %s failed on attempt %d, retrying: %v", operation, subject, attempt, err)
				return retry.RetryableError(err)
			}
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, HandleSalesforceError(ctx, operation, subject, err)
	}
	return body, nil
}

// soapFault extracts faultcode/faultstring from a SOAP fault body.
func soapFault(status int, body []byte) *Fault {
	fault := &Fault{StatusCode: status, Message: http.StatusText(status)}

	m, err := mxj.NewMapXml(body)
	if err != nil {
		return fault
	}
	if codes, _ := m.ValuesForKey("faultcode"); len(codes) > 0 {
		fault.Code = elementText(codes[0])
	}
	if msgs, _ := m.ValuesForKey("faultstring"); len(msgs) > 0 {
		fault.Message = elementText(msgs[0])
	}
	return fault
}

// elementText returns the character data of a decoded element, which mxj
// stores under "#text" once the element also carries attributes.
func elementText(v any) string {
	if m, ok := v.(map[string]any); ok {
		v = m["#text"]
	}
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// restFault reads the first entry of a REST error array.
func restFault(status int, body []byte) *Fault {
	fault := &Fault{StatusCode: status, Message: http.StatusText(status)}

	first := gjson.GetBytes(body, "0")
	if !first.Exists() {
		return fault
	}
	if code := first.Get("errorCode").String(); code != "" {
		fault.Code = code
	}
	if msg := first.Get("message").String(); msg != "" {
		fault.Message = msg
	}
	return fault
}
