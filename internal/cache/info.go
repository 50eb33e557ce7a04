package cache

import (
	"encoding/json"
	"os"
	"time"
)

// Info summarizes a cache file for status output
type Info struct {
	Path         string
	Size         int64
	TotalEntries int
	// Newest is the timestamp of the most recent entry
	Newest time.Time
}

// GetCacheInfo reads the cache file without opening a Cache. A missing
// or unreadable file yields partial information, not an error.
func GetCacheInfo(cachePath string) (*Info, error) {
	stat, err := os.Stat(cachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Info{Path: cachePath}, nil
		}
		return nil, err
	}

	info := &Info{
		Path: cachePath,
		Size: stat.Size(),
	}

	data, err := os.ReadFile(cachePath)
	if err != nil {
		return info, nil
	}

	var entries map[string]Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return info, nil
	}

	info.TotalEntries = len(entries)
	for _, entry := range entries {
		if entry.Timestamp.After(info.Newest) {
			info.Newest = entry.Timestamp
		}
	}

	return info, nil
}
