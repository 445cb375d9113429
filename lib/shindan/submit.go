package shindan

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

func parseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBufferString(html))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return doc, nil
}

// fetchShindanPage GETs the shindan landing page. This is also the
// request that makes the service issue the _session cookie the
// anti-forgery token is tied to, so it must go through the client's
// cookie jar.
func (c *Client) fetchShindanPage(ctx context.Context, id string) (*goquery.Document, error) {
	if id == "" {
		return nil, errEmptyID
	}

	res, err := c.http.R().
		SetContext(ctx).
		Get("/" + id)
	if err != nil {
		return nil, fmt.Errorf("fetch shindan page: %w", err)
	}
	if err := classifyStatus(res.StatusCode()); err != nil {
		if err == ErrShindanNotFound {
			return nil, fmt.Errorf("%w: %s", ErrShindanNotFound, id)
		}
		return nil, err
	}

	return parseDocument(string(res.Body()))
}

// submit runs the single-attempt round trip: GET the shindan page,
// extract the hidden form fields, POST the input, and verify the
// response is actually a result page. Returns the shindan title
// (empty when the page carries none) and the raw result html.
func (c *Client) submit(ctx context.Context, id, input string) (string, string, error) {
	ctx, span := tracer.Start(ctx, "client:submit")
	defer span.End()
	span.SetAttributes(attribute.String("shindan_id", id))

	doc, err := c.fetchShindanPage(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch shindan page")
		return "", "", err
	}

	title, _ := extractTitle(doc)

	form, err := extractFormData(doc, input)
	if err != nil {
		span.SetStatus(codes.Error, "failed to extract form data")
		return "", "", err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(form).
		Post("/" + id)
	if err != nil {
		span.SetStatus(codes.Error, "failed to post submission")
		return "", "", fmt.Errorf("post submission: %w", err)
	}
	if err := classifyStatus(res.StatusCode()); err != nil {
		span.SetStatus(codes.Error, "unexpected submission status")
		return "", "", err
	}

	resultHtml := string(res.Body())

	// the service answers 200 for rejected submissions too, serving
	// the input form back instead of a result page
	resultDoc, err := parseDocument(resultHtml)
	if err != nil {
		return "", "", err
	}
	marker := c.domain.resultMarker()
	if resultDoc.Find(marker).Length() == 0 {
		span.SetStatus(codes.Error, "submission rejected")
		return "", "", fmt.Errorf("%w: response has no %s", ErrSubmissionRejected, marker)
	}

	return title, resultHtml, nil
}
