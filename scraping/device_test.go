package scraping

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"dev.hon.one/sodola/common"
)

const sessionCookie = "SID"

const loginPage = `<html><head><title>Login</title></head><body>
<form method="post" action="/login.cgi"><input name="username"><input name="password" type="password"></form>
</body></html>`

// fakeDevice - Minimal imitation of the switch web UI.
type fakeDevice struct {
	credential common.Credential
	pages      map[string]string // Request URI to body, served after login
	statuses   map[string]int    // Request URI to status, overrides pages

	mutex      sync.Mutex
	requests   []string
	userAgents []string
	loginForms []map[string]string
	hashCookie string
}

func newFakeDevice(t *testing.T) (*fakeDevice, *httptest.Server) {
	t.Helper()
	device := &fakeDevice{
		credential: common.Credential{Username: "admin", Password: "admin"},
		pages: map[string]string{
			"/index.cgi":           strings.Repeat("<p>Welcome</p>", 20),
			"/port.cgi?page=stats": readTestdata(t, "port_stats.html"),
			"/port.cgi":            readTestdata(t, "port_config.html"),
			"/status.cgi":          "<p>short</p>",
		},
		statuses: make(map[string]int),
	}
	server := httptest.NewServer(device)
	t.Cleanup(server.Close)
	return device, server
}

func readTestdata(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return string(data)
}

func (device *fakeDevice) ServeHTTP(response http.ResponseWriter, request *http.Request) {
	uri := request.URL.RequestURI()
	device.mutex.Lock()
	device.requests = append(device.requests, request.Method+" "+uri)
	device.userAgents = append(device.userAgents, request.UserAgent())
	device.mutex.Unlock()

	if request.Method == http.MethodPost && request.URL.Path == LoginPath {
		device.handleLogin(response, request)
		return
	}

	if request.URL.Path == LoginPath {
		response.Write([]byte(loginPage))
		return
	}
	if cookie, err := request.Cookie(sessionCookie); err != nil || cookie.Value != "ok" {
		http.Redirect(response, request, LoginPath, http.StatusFound)
		return
	}
	if status, found := device.statuses[uri]; found {
		http.Error(response, strings.Repeat("x", 200), status)
		return
	}
	body, found := device.pages[uri]
	if !found {
		http.NotFound(response, request)
		return
	}
	response.Write([]byte(body))
}

func (device *fakeDevice) handleLogin(response http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		http.Error(response, "bad form", http.StatusBadRequest)
		return
	}
	form := make(map[string]string)
	for key := range request.PostForm {
		form[key] = request.PostForm.Get(key)
	}
	device.mutex.Lock()
	device.loginForms = append(device.loginForms, form)
	if cookie, err := request.Cookie("admin"); err == nil {
		device.hashCookie = cookie.Value
	}
	device.mutex.Unlock()

	if form["username"] != device.credential.Username || form["password"] != device.credential.Password {
		response.Write([]byte("<html><body>Login error: wrong password</body></html>"))
		return
	}
	http.SetCookie(response, &http.Cookie{Name: sessionCookie, Value: "ok", Path: "/"})
	http.Redirect(response, request, "/index.cgi", http.StatusFound)
}

func (device *fakeDevice) requestLog() []string {
	device.mutex.Lock()
	defer device.mutex.Unlock()
	return append([]string(nil), device.requests...)
}

// logins - Submitted login forms and the last credential hash cookie seen.
func (device *fakeDevice) logins() ([]map[string]string, string) {
	device.mutex.Lock()
	defer device.mutex.Unlock()
	return append([]map[string]string(nil), device.loginForms...), device.hashCookie
}

func (device *fakeDevice) userAgentLog() []string {
	device.mutex.Lock()
	defer device.mutex.Unlock()
	return append([]string(nil), device.userAgents...)
}

func deviceTarget(server *httptest.Server, credential common.Credential) common.Target {
	return common.Target{
		Name:       "test",
		Address:    server.URL,
		Credential: credential,
	}
}
