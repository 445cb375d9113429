package shindan

import (
	"context"
	"errors"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/araea/shindan-maker/lib/htmlshot"
	"github.com/araea/shindan-maker/lib/restyutil"
	"github.com/araea/shindan-maker/lib/telemetry"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("shindan")

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36 Edg/140.0.0.0"

const defaultTimeout = time.Second * 10

type ClientOptions struct {
	// Domain selects the deployment to talk to. Ignored when Locale
	// is set.
	Domain Domain
	// Locale resolves to a Domain via ParseDomain ("jp", "English",
	// "KR", ...).
	Locale string
	// BaseUrl overrides the domain's base URL, mostly useful for
	// tests and proxies.
	BaseUrl string
	// Timeout bounds each individual request, not a whole submission.
	Timeout time.Duration
	// DebugOutput receives a dump of every http exchange when set.
	DebugOutput restyutil.InstrumentOutput
}

// Client talks to one ShindanMaker deployment. It owns the cookie
// store the service ties its anti-forgery tokens to, so it must be
// reused across submissions rather than recreated per call. Safe for
// concurrent use.
type Client struct {
	domain   Domain
	base     *url.URL
	http     *resty.Client
	renderer Renderer
}

func NewClient(opts ClientOptions) (*Client, error) {
	domain := opts.Domain
	if opts.Locale != "" {
		var err error
		domain, err = ParseDomain(opts.Locale)
		if err != nil {
			return nil, err
		}
	}

	baseUrl := domain.BaseURL()
	if opts.BaseUrl != "" {
		baseUrl = opts.BaseUrl
	}
	base, err := url.Parse(baseUrl)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(baseUrl, "/"))
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", defaultUserAgent)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(base.Hostname()))
	client.SetTimeout(timeout)

	telemetry.InstrumentResty(client, "shindan/http")
	restyutil.InstrumentClient(client, opts.DebugOutput)

	return &Client{
		domain: domain,
		base:   base,
		http:   client,
	}, nil
}

func (c *Client) Domain() Domain {
	return c.domain
}

// SetRenderer attaches an image renderer to the client. The client
// owns it from here on: Close releases it.
func (c *Client) SetRenderer(r Renderer) {
	c.renderer = r
}

// InitRenderer attaches the built-in headless-Chrome renderer,
// configured to screenshot the result fragment. Chrome is only
// started on the first render.
func (c *Client) InitRenderer() {
	c.SetRenderer(htmlshot.New(htmlshot.Options{
		Selector:  selTitleAndResult,
		UserAgent: defaultUserAgent,
	}))
}

func (c *Client) Close() error {
	if c.renderer == nil {
		return nil
	}
	return c.renderer.Close()
}

// GetTitle fetches the title of a shindan without submitting it.
func (c *Client) GetTitle(ctx context.Context, id string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:GetTitle")
	defer span.End()

	doc, err := c.fetchShindanPage(ctx, id)
	if err != nil {
		return "", err
	}
	return extractTitle(doc)
}

// GetDescription fetches the description of a shindan without
// submitting it.
func (c *Client) GetDescription(ctx context.Context, id string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:GetDescription")
	defer span.End()

	doc, err := c.fetchShindanPage(ctx, id)
	if err != nil {
		return "", err
	}
	return extractDescription(doc)
}

// GetTitleWithDescription fetches both in a single request.
func (c *Client) GetTitleWithDescription(ctx context.Context, id string) (string, string, error) {
	ctx, span := tracer.Start(ctx, "client:GetTitleWithDescription")
	defer span.End()

	doc, err := c.fetchShindanPage(ctx, id)
	if err != nil {
		return "", "", err
	}
	title, err := extractTitle(doc)
	if err != nil {
		return "", "", err
	}
	description, err := extractDescription(doc)
	if err != nil {
		return "", "", err
	}
	return title, description, nil
}

// GetSegments submits input to a shindan and parses the result into
// ordered segments.
func (c *Client) GetSegments(ctx context.Context, id, input string) (Segments, error) {
	segments, _, err := c.GetSegmentsWithTitle(ctx, id, input)
	return segments, err
}

// GetSegmentsWithTitle submits input to a shindan and returns the
// parsed segments along with the shindan title.
func (c *Client) GetSegmentsWithTitle(ctx context.Context, id, input string) (Segments, string, error) {
	ctx, span := tracer.Start(ctx, "client:GetSegmentsWithTitle")
	defer span.End()

	title, resultHtml, err := c.submit(ctx, id, input)
	if err != nil {
		return nil, "", err
	}
	doc, err := parseDocument(resultHtml)
	if err != nil {
		return nil, "", err
	}
	segments, err := parseSegments(doc, c.base)
	if err != nil {
		return nil, "", err
	}
	return segments, title, nil
}

// GetTextResult submits input to a shindan and returns the parsed
// result.
func (c *Client) GetTextResult(ctx context.Context, id, input string) (TextResult, error) {
	segments, title, err := c.GetSegmentsWithTitle(ctx, id, input)
	if err != nil {
		return TextResult{}, err
	}
	return TextResult{Title: title, Segments: segments}, nil
}

// GetHTML submits input to a shindan and returns a standalone html
// document of the result, suitable for rendering.
func (c *Client) GetHTML(ctx context.Context, id, input string) (string, error) {
	html, _, err := c.GetHTMLWithTitle(ctx, id, input)
	return html, err
}

// GetHTMLWithTitle submits input to a shindan and returns a
// standalone html document of the result along with the shindan
// title.
func (c *Client) GetHTMLWithTitle(ctx context.Context, id, input string) (string, string, error) {
	ctx, span := tracer.Start(ctx, "client:GetHTMLWithTitle")
	defer span.End()

	title, resultHtml, err := c.submit(ctx, id, input)
	if err != nil {
		return "", "", err
	}
	html, err := buildResultHTML(id, resultHtml, c.base.String())
	if err != nil {
		return "", "", err
	}
	return html, title, nil
}

// GetImageResult submits input to a shindan and renders the result
// page to an image. SetRenderer must have been called first, the
// check happens before any network traffic.
func (c *Client) GetImageResult(ctx context.Context, id, input string) (ImageResult, error) {
	if c.renderer == nil {
		return ImageResult{}, ErrRendererNotInitialized
	}

	ctx, span := tracer.Start(ctx, "client:GetImageResult")
	defer span.End()

	html, title, err := c.GetHTMLWithTitle(ctx, id, input)
	if err != nil {
		return ImageResult{}, err
	}
	image, err := c.renderer.Render(ctx, html)
	if err != nil {
		return ImageResult{}, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return ImageResult{Title: title, Image: image}, nil
}

func classifyStatus(code int) error {
	if code == 404 {
		return ErrShindanNotFound
	}
	if code < 200 || code > 299 {
		return &StatusError{Code: code}
	}
	return nil
}

var errEmptyID = errors.New("shindan id must not be empty")
