package common

import (
	"strings"
)

// Credential - Web UI login of a device.
type Credential struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Target - A device to scrape. Empty credential fields take the config defaults.
type Target struct {
	Name       string `yaml:"name"`    // Unique, defaults to the address
	Address    string `yaml:"address"` // Host, host:port or full base URL
	Credential `yaml:",inline"`
}

// BaseURL - Base URL of the device web UI.
func (target Target) BaseURL() string {
	return NormalizeBaseURL(target.Address)
}

// NormalizeBaseURL - Add the http scheme if missing and strip trailing slashes.
func NormalizeBaseURL(address string) string {
	address = strings.TrimSpace(address)
	if !strings.HasPrefix(address, "http://") && !strings.HasPrefix(address, "https://") {
		address = "http://" + address
	}
	return strings.TrimRight(address, "/")
}

// SetTargets - Replace the loaded target table.
func SetTargets(targets []Target) {
	byKey := make(map[string]Target, 2*len(targets))
	for _, target := range targets {
		byKey[target.Address] = target
		byKey[target.BaseURL()] = target
	}
	// Names take precedence over addresses
	for _, target := range targets {
		byKey[target.Name] = target
	}

	list := make([]Target, len(targets))
	copy(list, targets)

	globalTargets.Lock()
	globalTargets.list = list
	globalTargets.byKey = byKey
	globalTargets.Unlock()
}

// Targets - Snapshot of the loaded targets in config order.
func Targets() []Target {
	globalTargets.RLock()
	defer globalTargets.RUnlock()
	list := make([]Target, len(globalTargets.list))
	copy(list, globalTargets.list)
	return list
}

// LookupTarget - Find a loaded target by name, address or base URL.
func LookupTarget(key string) (Target, bool) {
	globalTargets.RLock()
	defer globalTargets.RUnlock()
	if target, found := globalTargets.byKey[key]; found {
		return target, true
	}
	target, found := globalTargets.byKey[NormalizeBaseURL(key)]
	return target, found
}
