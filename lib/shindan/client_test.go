package shindan

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/araea/shindan-maker/lib/telemetry"
	"github.com/stretchr/testify/require"
)

// fakeShindan serves the fixture pages the way the live service does:
// the GET issues the session cookie, the POST only answers with a
// result page when the cookie and the anti-forgery token come back.
type fakeShindan struct {
	gets  atomic.Int64
	posts atomic.Int64
}

func (f *fakeShindan) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /1222992", func(w http.ResponseWriter, r *http.Request) {
		f.gets.Add(1)
		http.SetCookie(w, &http.Cookie{Name: "_session", Value: "fixture-session"})
		w.Write([]byte(shindanPageFixture))
	})
	mux.HandleFunc("POST /1222992", func(w http.ResponseWriter, r *http.Request) {
		f.posts.Add(1)
		cookie, err := r.Cookie("_session")
		if err != nil || cookie.Value != "fixture-session" ||
			r.FormValue("_token") != "fixture-csrf-token-3f9c2b71" ||
			r.FormValue("user_input_value_1") == "" {
			// rejected submissions come back 200 with the input form
			w.Write([]byte(shindanPageFixture))
			return
		}
		w.Write([]byte(resultPageFixture))
	})
	return mux
}

func newTestClient(t *testing.T, baseUrl string) *Client {
	t.Helper()
	client, err := NewClient(ClientOptions{
		Domain:  DomainEn,
		BaseUrl: baseUrl,
	})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestClientGetTitle(t *testing.T) {
	fake := &fakeShindan{}
	server := httptest.NewServer(fake.handler())
	defer server.Close()
	client := newTestClient(t, server.URL)

	title, err := client.GetTitle(context.Background(), "1222992")
	require.NoError(t, err)
	require.Equal(t, "Fantasy Stats", title)
	require.EqualValues(t, 1, fake.gets.Load())
	require.EqualValues(t, 0, fake.posts.Load())
}

func TestClientGetTitleWithDescription(t *testing.T) {
	fake := &fakeShindan{}
	server := httptest.NewServer(fake.handler())
	defer server.Close()
	client := newTestClient(t, server.URL)

	title, description, err := client.GetTitleWithDescription(context.Background(), "1222992")
	require.NoError(t, err)
	require.Equal(t, "Fantasy Stats", title)
	require.Equal(t, "Let's see your fantasy stats!\nInput a name to begin. More shindans", description)
	require.EqualValues(t, 1, fake.gets.Load())
}

func TestClientGetSegments(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:lib/shindan")
	defer cleanup()

	fake := &fakeShindan{}
	server := httptest.NewServer(fake.handler())
	defer server.Close()
	client := newTestClient(t, server.URL)

	segments, title, err := client.GetSegmentsWithTitle(context.Background(), "1222992", "test_user")
	require.NoError(t, err)
	require.Equal(t, "Fantasy Stats", title)
	require.Equal(t, "test_user's fantasy stats\nHP: 320\nMP: 89\nClass: Paladin",
		segments.Filter(SegmentText).String())
	require.Len(t, segments.Filter(SegmentImage), 1)
	require.EqualValues(t, 1, fake.gets.Load())
	require.EqualValues(t, 1, fake.posts.Load())
}

func TestClientGetTextResult(t *testing.T) {
	fake := &fakeShindan{}
	server := httptest.NewServer(fake.handler())
	defer server.Close()
	client := newTestClient(t, server.URL)

	result, err := client.GetTextResult(context.Background(), "1222992", "test_user")
	require.NoError(t, err)
	require.Equal(t, "Fantasy Stats", result.Title)
	require.NotEmpty(t, result.Segments)
}

func TestClientGetHTML(t *testing.T) {
	fake := &fakeShindan{}
	server := httptest.NewServer(fake.handler())
	defer server.Close()
	client := newTestClient(t, server.URL)

	html, err := client.GetHTML(context.Background(), "1222992", "test_user")
	require.NoError(t, err)
	require.True(t, strings.Contains(html, `id="title_and_result"`))
	require.False(t, strings.Contains(html, "shindanEffects"))
}

func TestClientSubmissionRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the form page again, no result marker
		w.Write([]byte(shindanPageFixture))
	}))
	defer server.Close()
	client := newTestClient(t, server.URL)

	_, err := client.GetSegments(context.Background(), "1222992", "test_user")
	require.ErrorIs(t, err, ErrSubmissionRejected)
}

func TestClientShindanNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()
	client := newTestClient(t, server.URL)

	_, err := client.GetTitle(context.Background(), "99999999")
	require.ErrorIs(t, err, ErrShindanNotFound)
}

func TestClientUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()
	client := newTestClient(t, server.URL)

	_, err := client.GetTitle(context.Background(), "1222992")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusBadGateway, statusErr.Code)
}

func TestClientEmptyID(t *testing.T) {
	fake := &fakeShindan{}
	server := httptest.NewServer(fake.handler())
	defer server.Close()
	client := newTestClient(t, server.URL)

	_, err := client.GetTitle(context.Background(), "")
	require.Error(t, err)
	require.EqualValues(t, 0, fake.gets.Load())
}

type stubRenderer struct {
	image    []byte
	err      error
	lastHtml string
	closed   bool
}

func (s *stubRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	s.lastHtml = html
	return s.image, s.err
}

func (s *stubRenderer) Close() error {
	s.closed = true
	return nil
}

func TestClientGetImageResultWithoutRenderer(t *testing.T) {
	fake := &fakeShindan{}
	server := httptest.NewServer(fake.handler())
	defer server.Close()
	client := newTestClient(t, server.URL)

	_, err := client.GetImageResult(context.Background(), "1222992", "test_user")
	require.ErrorIs(t, err, ErrRendererNotInitialized)

	// the missing renderer is caught before any traffic happens
	require.EqualValues(t, 0, fake.gets.Load())
	require.EqualValues(t, 0, fake.posts.Load())
}

func TestClientGetImageResult(t *testing.T) {
	fake := &fakeShindan{}
	server := httptest.NewServer(fake.handler())
	defer server.Close()
	client := newTestClient(t, server.URL)

	renderer := &stubRenderer{image: []byte{0x89, 'P', 'N', 'G'}}
	client.SetRenderer(renderer)

	result, err := client.GetImageResult(context.Background(), "1222992", "test_user")
	require.NoError(t, err)
	require.Equal(t, "Fantasy Stats", result.Title)
	require.Equal(t, renderer.image, result.Image)
	require.True(t, strings.Contains(renderer.lastHtml, `id="title_and_result"`))
}

func TestClientGetImageResultRenderFailure(t *testing.T) {
	fake := &fakeShindan{}
	server := httptest.NewServer(fake.handler())
	defer server.Close()
	client := newTestClient(t, server.URL)

	client.SetRenderer(&stubRenderer{err: errors.New("tab crashed")})

	_, err := client.GetImageResult(context.Background(), "1222992", "test_user")
	require.ErrorIs(t, err, ErrRender)
}

func TestClientCloseReleasesRenderer(t *testing.T) {
	client, err := NewClient(ClientOptions{Domain: DomainEn})
	require.NoError(t, err)

	renderer := &stubRenderer{}
	client.SetRenderer(renderer)
	require.NoError(t, client.Close())
	require.True(t, renderer.closed)
}
