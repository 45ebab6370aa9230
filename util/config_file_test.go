package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

func TestParseConfigFile(t *testing.T) {
	directory := t.TempDir()
	yamlPath := filepath.Join(directory, "config.yml")
	jsonPath := filepath.Join(directory, "config.json")
	require.NoError(t, os.WriteFile(yamlPath, []byte("name: yaml\n"), 0o600))
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"name": "json", "count": 2}`), 0o600))

	config := testConfig{Count: 7}
	require.NoError(t, ParseConfigFile(&config, yamlPath))
	assert.Equal(t, testConfig{Name: "yaml", Count: 7}, config)

	require.NoError(t, ParseConfigFile(&config, jsonPath))
	assert.Equal(t, testConfig{Name: "json", Count: 2}, config)
}

func TestParseConfigFileErrors(t *testing.T) {
	directory := t.TempDir()
	brokenPath := filepath.Join(directory, "broken.yml")
	require.NoError(t, os.WriteFile(brokenPath, []byte("name: [\n"), 0o600))

	var config testConfig
	assert.Error(t, ParseConfigFile(&config, brokenPath))
	assert.Error(t, ParseConfigFile(&config, filepath.Join(directory, "missing.yml")))
}
