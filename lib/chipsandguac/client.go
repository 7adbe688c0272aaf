package chipsandguac

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/jquatier/chipsandguac/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("chipsandguac")

// BaseOrderUrl is the production ordering site.
const BaseOrderUrl = "https://order.chipotle.com"

// authCookie is set by the site once a login succeeds.
const authCookie = "OnlineOrder3Auth1"

// tokenHeader carries the page's anti-forgery token on POSTs.
const tokenHeader = "RequestVerificationToken"

type Options struct {
	// BaseUrl defaults to BaseOrderUrl.
	BaseUrl     string
	Email       string
	Password    string
	LocationId  int
	PhoneNumber string
}

// Client drives one ordering session against the restaurant website. It owns
// a cookie jar and the id of the order it has in progress, so one Client
// supports at most one ordering workflow at a time; concurrent users each
// need their own Client.
type Client struct {
	baseUrl *url.URL
	http    *resty.Client

	email       string
	password    string
	locationId  int
	phoneNumber string

	// 0 means no order is open
	currentOrderId int64
}

func NewClient(opts Options) (*Client, error) {
	rawUrl := opts.BaseUrl
	if rawUrl == "" {
		rawUrl = BaseOrderUrl
	}
	baseUrl, err := url.Parse(rawUrl)
	if err != nil {
		return nil, err
	}

	client, err := newHttpClient(rawUrl)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseUrl:     baseUrl,
		http:        client,
		email:       opts.Email,
		password:    opts.Password,
		locationId:  opts.LocationId,
		phoneNumber: opts.PhoneNumber,
	}, nil
}

// newHttpClient builds the cookie-backed channel shared by every exchange of
// one session. Redirect following is disabled: a redirect is a signal the
// caller interprets, not something to consume silently.
func newHttpClient(baseUrl string) (*resty.Client, error) {
	client := resty.New()
	client.SetBaseURL(baseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.NoRedirectPolicy())
	client.SetTimeout(time.Second * 30)

	restyutil.InstrumentClient(client, "chipsandguac/http")
	return client, nil
}

// IsAuthenticated reports whether the cookie jar currently holds the site's
// auth cookie. Recomputed on every call so an expired session is never
// mistaken for a live one.
func (c *Client) IsAuthenticated() bool {
	for _, cookie := range c.http.GetClient().Jar.Cookies(c.baseUrl) {
		if cookie.Name == authCookie && cookie.Value != "" {
			return true
		}
	}
	return false
}

// execute runs one exchange and applies the uniform result contract: 200
// yields the body, anything else is a TransportError. No retries here.
func execute(req *resty.Request, method, path string) ([]byte, error) {
	res, err := req.Execute(method, path)
	if err != nil {
		// redirect following is off, so a 3xx surfaces as an error
		// alongside the response it would have followed
		if res != nil && res.StatusCode() >= 300 && res.StatusCode() < 400 {
			return nil, &TransportError{StatusCode: res.StatusCode(), Body: res.String()}
		}
		return nil, err
	}
	if res.StatusCode() != http.StatusOK {
		return nil, &TransportError{StatusCode: res.StatusCode(), Body: res.String()}
	}
	return res.Body(), nil
}

func (c *Client) getPage(ctx context.Context, path string) ([]byte, error) {
	return execute(c.http.R().SetContext(ctx), resty.MethodGet, path)
}

// postAction issues a state-mutating POST guarded by a page-scoped token.
// payload is marshaled as JSON when non-nil.
func (c *Client) postAction(ctx context.Context, path, token string, payload any) ([]byte, error) {
	req := c.http.R().
		SetContext(ctx).
		SetHeader(tokenHeader, token).
		SetHeader("Content-Type", "application/json")
	if payload != nil {
		req.SetBody(payload)
	}
	return execute(req, resty.MethodPost, path)
}
