package scraping

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
)

// UserAgent - Identifying header sent with every device request.
const UserAgent = "Mozilla/5.0 (Linux x86_64) Prometheus Sodola Exporter"

// Session - HTTP session with one device web UI, holding the login cookies.
// Each scrape opens its own session.
type Session struct {
	baseURL    string
	parsedBase *url.URL
	jar        http.CookieJar
	client     *resty.Client
}

// Response - Outcome of a device request.
type Response struct {
	StatusCode int
	URL        string // Final URL, after redirects
	Body       string
}

// NewSession - Open a session for the device at baseURL (scheme and host, no trailing slash).
func NewSession(baseURL string) (*Session, error) {
	parsedBase, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL %q: %w", baseURL, err)
	}
	if parsedBase.Scheme == "" || parsedBase.Host == "" {
		return nil, fmt.Errorf("base URL %q lacks scheme or host", baseURL)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetCookieJar(jar)
	client.SetHeader("User-Agent", UserAgent)
	client.SetLogger(log.StandardLogger())

	return &Session{
		baseURL:    baseURL,
		parsedBase: parsedBase,
		jar:        jar,
		client:     client,
	}, nil
}

// URL - Absolute URL of a device path.
func (session *Session) URL(path string) string {
	return session.baseURL + path
}

// SetCookie - Store a cookie for the device, sent with all following requests.
func (session *Session) SetCookie(name string, value string) {
	session.jar.SetCookies(session.parsedBase, []*http.Cookie{{
		Name:  name,
		Value: value,
		Path:  "/",
	}})
}

// Get - GET a device path.
func (session *Session) Get(ctx context.Context, path string, timeout time.Duration) (*Response, error) {
	return session.do(ctx, resty.MethodGet, path, nil, timeout)
}

// Post - POST a form to a device path.
func (session *Session) Post(ctx context.Context, path string, form map[string]string, timeout time.Duration) (*Response, error) {
	return session.do(ctx, resty.MethodPost, path, form, timeout)
}

func (session *Session) do(ctx context.Context, method string, path string, form map[string]string, timeout time.Duration) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	request := session.client.R().SetContext(ctx)
	if form != nil {
		request.SetFormData(form)
	}
	response, err := request.Execute(method, session.URL(path))
	if err != nil {
		return nil, fmt.Errorf("%v %v: %w", method, path, err)
	}

	finalURL := session.URL(path)
	if raw := response.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
		finalURL = raw.Request.URL.String()
	}
	log.WithFields(log.Fields{
		"method": method,
		"url":    finalURL,
		"status": response.StatusCode(),
		"bytes":  len(response.Body()),
	}).Trace("Device response")

	return &Response{
		StatusCode: response.StatusCode(),
		URL:        finalURL,
		Body:       string(response.Body()),
	}, nil
}
