package client

import (
	"context"
	"net/http/cookiejar"
	"time"

	"github.com/pkg/errors"
	"resty.dev/v3"
)

const (
	DefaultBaseURL = "http://localhost:3001"
	defaultTimeout = 10 * time.Second
)

// Client talks to the admin API. The session cookie set by Login is kept in the client's cookie jar.
type Client struct {
	client   *resty.Client
	notifier Notifier
}

type Option func(*Client)

// WithNotifier replaces the default logrus notifier
func WithNotifier(n Notifier) Option {
	return func(c *Client) {
		c.notifier = n
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.SetTimeout(d)
	}
}

// New creates a Client for the API served at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "create cookie jar")
	}

	c := &Client{
		client: resty.New().
			SetBaseURL(baseURL).
			SetCookieJar(jar).
			SetTimeout(defaultTimeout),
		notifier: LogNotifier{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) r(ctx context.Context) *resty.Request {
	return c.client.R().WithContext(ctx)
}

// send executes req and turns transport failures and non-2xx answers into errors.
// When failure is not empty the error is also reported to the notifier.
func (c *Client) send(req *resty.Request, method, url, failure string) (*resty.Response, error) {
	res, err := req.Execute(method, url)
	switch {
	case err != nil:
		err = errors.Wrapf(err, "%s %s", method, url)
	case res.IsError():
		err = newAPIError(res)
	default:
		return res, nil
	}

	if failure != "" {
		c.notifier.Notify(Notification{
			Title:       "Error",
			Description: failure,
			Variant:     VariantDestructive,
		})
	}
	return nil, err
}
