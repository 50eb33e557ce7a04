package status

import (
	"time"
)

// Data contains all the information to display in status
type Data struct {
	// Header
	Version   string
	ConfigDir string

	// Settings
	SettingsFile  string
	SettingsError string
	Program       string
	NameVar       string
	LogLevel      string
	LogFile       string
	Disabled      bool

	// Installation
	HelperPath   string
	HelperFound  bool
	LibraryPath  string
	LibraryFound bool
	Preloaded    bool

	// Rules
	RulesFile  string
	RulesError string
	Apps       []AppRules

	// Cache
	CachePath         string
	CacheFileSize     int64
	CacheTotalEntries int
	CacheUpdated      time.Time
}

// AppRules lists the rules of one application in evaluation order
type AppRules struct {
	App   string
	Rules []RuleInfo
}

// RuleInfo summarizes one rule
type RuleInfo struct {
	Name   string
	Match  string
	Action string
	When   bool
	Filter string
	Cache  time.Duration
}
