package core

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"

	"canvassync/lib/restyutil"
	"canvassync/lib/scrapers/canvas/selectors"
)

var LoginFailed = fmt.Errorf("Failed to login to your account.")

// request bounds for the authentication steps. stale or invalid credentials
// are a configuration problem, not a transient fault, so there is no retry.
const (
	loginPageTimeout = time.Second * 15
	postLoginTimeout = time.Second * 30
)

type Client struct {
	BaseUrl   *url.URL
	Http      *resty.Client
	Selectors selectors.Registry
}

type ClientOptions struct {
	BaseUrl string
	// Selectors may be left zero to use selectors.Default().
	Selectors *selectors.Registry
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	sel := selectors.Default()
	if opts.Selectors != nil {
		sel = *opts.Selectors
	}

	c := &Client{
		BaseUrl:   baseUrl,
		Http:      client,
		Selectors: sel,
	}
	return c, nil
}

// Document fetches a path (or absolute url on the portal host) and parses the
// response body.
func (c *Client) Document(ctx context.Context, endpoint string) (*goquery.Document, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(endpoint)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
}

// ResolveUrl turns a relative href discovered in a document into an absolute
// url on the portal host.
func (c *Client) ResolveUrl(href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return c.BaseUrl.ResolveReference(ref).String(), nil
}

func (c *Client) LoginUsernamePassword(ctx context.Context, username, password string) error {
	ctx, span := tracer.Start(ctx, "client:LoginUsernamePassword")
	defer span.End()

	loginCtx, cancel := context.WithTimeout(ctx, loginPageTimeout)
	defer cancel()
	doc, err := c.Document(loginCtx, "/login/canvas")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch login page")
		return err
	}

	sel := c.Selectors.Login
	if len(doc.Find(sel.Username).Nodes) == 0 ||
		len(doc.Find(sel.Password).Nodes) == 0 ||
		len(doc.Find(sel.Submit).Nodes) == 0 {
		span.SetStatus(codes.Error, "failed to find login controls")
		return fmt.Errorf("could not find login controls on '%s'", c.BaseUrl)
	}

	csrf := doc.Find(sel.CSRFToken).AttrOr("value", "")
	if csrf == "" {
		span.SetStatus(codes.Error, "failed to find csrf token")
		return fmt.Errorf("could not find authenticity token")
	}

	_, err = c.Http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"authenticity_token":             csrf,
			"pseudonym_session[unique_id]":   username,
			"pseudonym_session[password]":    password,
			"pseudonym_session[remember_me]": "0",
		}).
		Post("/login/canvas")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make login request")
		return err
	}

	dashCtx, cancel := context.WithTimeout(ctx, postLoginTimeout)
	defer cancel()
	doc, err = c.Document(dashCtx, "/")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to request dashboard after login")
		return err
	}

	// the global nav dashboard link only renders for a signed-in session
	if len(doc.Find(c.Selectors.Navigation.DashboardLink).Nodes) == 0 {
		span.SetStatus(codes.Error, LoginFailed.Error())
		return LoginFailed
	}

	return nil
}
