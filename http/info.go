package http

import (
	"html/template"
	"io"

	"dev.hon.one/sodola/common"
)

var infoPageTemplate = template.Must(template.New("info").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Sodola HTTP Exporter</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; }
        .endpoint { background: #f5f5f5; padding: 10px; margin: 10px 0; border-radius: 4px; }
        code { background: #e8e8e8; padding: 2px 4px; border-radius: 2px; }
    </style>
</head>
<body>
    <h1>Sodola HTTP Exporter</h1>
    <p>HTTP service that provides Prometheus metrics for Sodola network devices.</p>
    <p>{{.Name}} version {{.Version}} by {{.Author}}.</p>

    <h2>Endpoints</h2>

    <div class="endpoint">
        <h3>GET /sodola</h3>
        <p>Scrape metrics from a Sodola device</p>
        <p><strong>Parameters:</strong></p>
        <ul>
            <li><code>target</code> - Required. Sodola device IP/hostname</li>
            <li><code>username</code> - Optional. Default: {{.DefaultUsername}}</li>
            <li><code>password</code> - Optional. Default: {{.DefaultPassword}}</li>
        </ul>
        <p><strong>Example:</strong> <code>/sodola?target=192.168.40.6</code></p>
        <p>Octet counters are estimated from packet counts, the device does not report bytes.</p>
    </div>

    <div class="endpoint">
        <h3>GET /health</h3>
        <p>Service health check</p>
    </div>

    <div class="endpoint">
        <h3>GET /metrics</h3>
        <p>Metrics about the exporter itself</p>
    </div>

    <h2>Usage with Prometheus</h2>
    <pre>
scrape_configs:
  - job_name: 'sodola'
    static_configs:
      - targets:
        - 192.168.40.6
        - 192.168.40.4
    metrics_path: /sodola
    params:
      username: [admin]
      password: [admin]
    relabel_configs:
      - source_labels: [__address__]
        target_label: __param_target
      - source_labels: [__param_target]
        target_label: instance
      - target_label: __address__
        replacement: localhost:{{.Port}}
    </pre>
</body>
</html>
`))

func writeInfoPage(writer io.Writer) error {
	return infoPageTemplate.Execute(writer, struct {
		Name            string
		Version         string
		Author          string
		DefaultUsername string
		DefaultPassword string
		Port            int
	}{
		Name:            common.AppName,
		Version:         common.AppVersion,
		Author:          common.AppAuthor,
		DefaultUsername: common.DefaultUsername,
		DefaultPassword: common.DefaultPassword,
		Port:            common.GlobalConfig.HTTP.ListenPort,
	})
}
