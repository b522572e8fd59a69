package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/roofingmaterials/roofserve"
)

// Formatter formats results for output.
type Formatter interface {
	FormatImages(w io.Writer, entries []roofserve.ImageEntry) error
	FormatError(w io.Writer, err error) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{}
}

// HumanFormatter outputs human-readable text.
type HumanFormatter struct{}

// FormatImages formats an image listing as an aligned table.
func (f *HumanFormatter) FormatImages(w io.Writer, entries []roofserve.ImageEntry) error {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "No images found")
		return nil
	}

	// Calculate column widths
	maxPathLen := 4 // "PATH"
	for i := range entries {
		if len(entries[i].Path) > maxPathLen {
			maxPathLen = len(entries[i].Path)
		}
	}
	if maxPathLen > 60 {
		maxPathLen = 60
	}

	_, _ = fmt.Fprintf(w, "%-*s  %10s  %s\n", maxPathLen, "PATH", "SIZE", "CONTENT TYPE")
	_, _ = fmt.Fprintf(w, "%s  %s  %s\n", strings.Repeat("-", maxPathLen), strings.Repeat("-", 10), strings.Repeat("-", 12))

	var total int64
	for i := range entries {
		entry := &entries[i]
		path := entry.Path
		if len(path) > maxPathLen {
			path = path[:maxPathLen-3] + "..."
		}
		_, _ = fmt.Fprintf(w, "%-*s  %10s  %s\n",
			maxPathLen,
			path,
			formatSize(entry.Size),
			entry.ContentType,
		)
		total += entry.Size
	}

	_, _ = fmt.Fprintf(w, "\n%d image(s) (%s total)\n", len(entries), formatSize(total))

	return nil
}

// FormatError formats an error as human-readable text.
func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return nil
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

type imageList struct {
	Items     []roofserve.ImageEntry `json:"items"`
	Count     int                    `json:"count"`
	TotalSize int64                  `json:"total_size"`
}

// FormatImages formats an image listing as a JSON document.
func (f *JSONFormatter) FormatImages(w io.Writer, entries []roofserve.ImageEntry) error {
	list := imageList{Items: entries, Count: len(entries)}
	if list.Items == nil {
		list.Items = []roofserve.ImageEntry{}
	}
	for i := range entries {
		list.TotalSize += entries[i].Size
	}
	return writeJSON(w, list)
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	return writeJSON(w, map[string]string{"error": err.Error()})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)

	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.1f TB", float64(bytes)/TB)
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
