package common

import "sync"

// Global non-constant variables go here.

// GlobalConfig - Global singleton.
var GlobalConfig = DefaultConfig()

// globalTargets - Loaded targets, keyed by name and address. Replaced as a whole on reload.
var globalTargets = struct {
	sync.RWMutex
	list  []Target
	byKey map[string]Target
}{}
