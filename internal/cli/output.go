package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// cacheView is the read side of the response cache used for reporting.
type cacheView interface {
	URLs() []string
	Lookup(url string) (string, bool)
	Len() int
}

// CacheStats summarizes the response cache.
type CacheStats struct {
	Backend    string `json:"backend"`
	Path       string `json:"path"`
	Entries    int    `json:"entries"`
	TotalBytes int    `json:"total_bytes"`
}

// NewCacheStats computes stats for c.
func NewCacheStats(c cacheView, backend, path string) *CacheStats {
	stats := &CacheStats{
		Backend: backend,
		Path:    path,
		Entries: c.Len(),
	}
	for _, u := range c.URLs() {
		body, _ := c.Lookup(u)
		stats.TotalBytes += len(body)
	}
	return stats
}

// WriteCacheStats writes stats in the specified format
func WriteCacheStats(w io.Writer, stats *CacheStats, format OutputFormat) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(stats)
	case FormatText:
		fmt.Fprintf(w, "Backend: %s\n", stats.Backend)
		fmt.Fprintf(w, "Path:    %s\n", stats.Path)
		fmt.Fprintf(w, "Entries: %d\n", stats.Entries)
		fmt.Fprintf(w, "Size:    %d bytes\n", stats.TotalBytes)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteCacheTable renders one row per cached URL.
func WriteCacheTable(w io.Writer, c cacheView) {
	if c.Len() == 0 {
		fmt.Fprintln(w, "Cache is empty.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "URL", "Bytes"})
	for i, u := range c.URLs() {
		body, _ := c.Lookup(u)
		t.AppendRow(table.Row{i + 1, u, len(body)})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
