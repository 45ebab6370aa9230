package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dev.hon.one/sodola/common"
)

func TestWriteMetricsToFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "metrics.prom")
	scrapeFlags.output = output
	t.Cleanup(func() { scrapeFlags.output = "" })

	catalog := common.NewCatalog()
	catalog.Add(common.MetricIfOperStatus, common.Labels{common.LabelIfIndex: "1"}, 1)
	require.NoError(t, writeMetrics(catalog))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# TYPE ifOperStatus gauge\n")
	assert.Contains(t, string(data), `ifOperStatus{ifIndex="1"} 1.0`+"\n")
}

func TestScrapeTargetFlags(t *testing.T) {
	t.Cleanup(func() {
		common.SetTargets(nil)
		scrapeFlags.host = DefaultHost
		scrapeCmd.Flags().Set("username", common.DefaultUsername)
		scrapeCmd.Flags().Lookup("username").Changed = false
	})
	common.SetTargets([]common.Target{{
		Name:       "core",
		Address:    "192.168.40.4",
		Credential: common.Credential{Username: "stored", Password: "stored"},
	}})

	scrapeFlags.host = "core"
	target := scrapeTarget(scrapeCmd)
	assert.Equal(t, "192.168.40.4", target.Address)
	assert.Equal(t, common.Credential{Username: "stored", Password: "stored"}, target.Credential)

	require.NoError(t, scrapeCmd.Flags().Set("username", "flag"))
	target = scrapeTarget(scrapeCmd)
	assert.Equal(t, common.Credential{Username: "flag", Password: "stored"}, target.Credential)

	scrapeFlags.host = "192.168.40.9"
	target = scrapeTarget(scrapeCmd)
	assert.Equal(t, "http://192.168.40.9", target.BaseURL())
	assert.Equal(t, "flag", target.Username)
	assert.Equal(t, common.GlobalConfig.Defaults.Password, target.Password)
}
