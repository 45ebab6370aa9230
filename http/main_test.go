package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dev.hon.one/sodola/common"
)

const statsPage = `<html><body><table>
<tr><th>Port</th><th>State</th><th>Link Status</th><th>TxGoodPkt</th><th>TxBadPkt</th><th>RxGoodPkt</th><th>RxBadPkt</th></tr>
<tr><td>Port 1</td><td>Enable</td><td>Link Up</td><td>100</td><td>0</td><td>200</td><td>1</td></tr>
</table></body></html>`

// newDevice - Device accepting the given password and serving the port statistics page.
func newDevice(t *testing.T, password string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		switch request.URL.RequestURI() {
		case "/login.cgi":
			if request.FormValue("password") != password {
				io.WriteString(response, "Login error")
				return
			}
			http.Redirect(response, request, "/port.cgi?page=stats", http.StatusFound)
		case "/port.cgi?page=stats":
			io.WriteString(response, statsPage)
		default:
			http.NotFound(response, request)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	NewHandler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
	return recorder
}

func parseMetrics(t *testing.T, body string) map[string]float64 {
	t.Helper()
	var parser expfmt.TextParser
	var families map[string]*dto.MetricFamily
	families, err := parser.TextToMetricFamilies(strings.NewReader(body))
	require.NoError(t, err)
	values := make(map[string]float64)
	for name, family := range families {
		for _, metric := range family.GetMetric() {
			value := metric.GetGauge().GetValue() + metric.GetCounter().GetValue()
			index := ""
			for _, label := range metric.GetLabel() {
				if label.GetName() == common.LabelIfIndex {
					index = label.GetValue()
				}
			}
			values[name+index] = value
		}
	}
	return values
}

func TestSodolaMissingTarget(t *testing.T) {
	recorder := get(t, "/sodola")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "target")
}

func TestSodolaScrape(t *testing.T) {
	device := newDevice(t, "admin")
	address := strings.TrimPrefix(device.URL, "http://")

	recorder := get(t, "/sodola?target="+address)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, strings.HasPrefix(recorder.Header().Get("Content-Type"), "text/plain; version=0.0.4"))

	body := recorder.Body.String()
	assert.True(t, strings.HasPrefix(body, "# HELP ifAdminStatus "))
	assert.Contains(t, body, `ifHCOutOctets{ifAlias="Port 1",ifDescr="Port 1",ifIndex="1",ifName="Port1"} 80000.0`+"\n")
	values := parseMetrics(t, body)
	assert.Equal(t, 1.0, values["sodola_up"])
	assert.Equal(t, 160064.0, values["ifHCInOctets1"])
	assert.Equal(t, 1.0, values["ifOperStatus1"])
}

func TestSodolaCredentials(t *testing.T) {
	device := newDevice(t, "secret")

	values := parseMetrics(t, get(t, "/sodola?target="+device.URL).Body.String())
	assert.Equal(t, 0.0, values["sodola_up"])

	values = parseMetrics(t, get(t, "/sodola?target="+device.URL+"&username=admin&password=secret").Body.String())
	assert.Equal(t, 1.0, values["sodola_up"])

	t.Cleanup(func() { common.SetTargets(nil) })
	common.SetTargets([]common.Target{{
		Name:       "switch",
		Address:    device.URL,
		Credential: common.Credential{Username: "admin", Password: "secret"},
	}})
	values = parseMetrics(t, get(t, "/sodola?target=switch").Body.String())
	assert.Equal(t, 1.0, values["sodola_up"])
}

func TestSodolaUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	address := server.URL
	server.Close()

	recorder := get(t, "/sodola?target="+address)
	require.Equal(t, http.StatusOK, recorder.Code)
	values := parseMetrics(t, recorder.Body.String())
	assert.Equal(t, map[string]float64{
		"sodola_up":                      0,
		"sodola_scrape_duration_seconds": 0,
	}, values)
}

func TestHealth(t *testing.T) {
	recorder := get(t, "/health")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "sodola-http-exporter", health["service"])
	assert.IsType(t, float64(0), health["timestamp"])
}

func TestInfoPage(t *testing.T) {
	recorder := get(t, "/")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Type"), "text/html")
	body := recorder.Body.String()
	assert.Contains(t, body, "/sodola?target=")
	assert.Contains(t, body, "relabel_configs")
	assert.Contains(t, body, "replacement: localhost:9118")
}

func TestNotFound(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, get(t, "/other").Code)
	assert.Equal(t, http.StatusNotFound, get(t, "/sodola/extra").Code)
}

func TestSelfMetrics(t *testing.T) {
	RecordScrape(common.ScrapeEntry{Success: true})
	recorder := get(t, "/metrics")
	require.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, "sodola_exporter_info{version=\""+common.AppVersion+"\"} 1")
	assert.Contains(t, body, "sodola_exporter_scrapes_total{result=\"success\"}")
	assert.Contains(t, body, "go_goroutines")
}
