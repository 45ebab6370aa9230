package util

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ParseConfigFile reads a file and parses it as YAML into the provided object.
// JSON files are accepted too, being valid YAML. Fields absent from the file keep their values.
func ParseConfigFile(destination interface{}, path string) error {
	log.WithFields(log.Fields{
		"datatype": fmt.Sprintf("%T", destination),
		"path":     path,
	}).Trace("Parsing config file")

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, destination); err != nil {
		return fmt.Errorf("parse file %q: %w", path, err)
	}

	return nil
}
