package playlist

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// wpl mirrors the SMIL structure of a Windows Media Player playlist
// file. Only the pieces the importer reads are mapped.
type wpl struct {
	XMLName xml.Name `xml:"smil"`
	Head    struct {
		Title string `xml:"title"`
	} `xml:"head"`
	Body struct {
		Seq struct {
			Media []struct {
				Src string `xml:"src,attr"`
			} `xml:"media"`
		} `xml:"seq"`
	} `xml:"body"`
}

// LoadWPL imports the entries of a WPL playlist file, resolving each
// source path against the playlist location and then the media
// directory. Entries that cannot be located on disk are imported by
// bare filename so the user can still see them. Returns the number of
// imported items.
func (p *Playlist) LoadWPL(wplPath, mediaDir string) (int, error) {
	data, err := os.ReadFile(wplPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read playlist file: %w", err)
	}

	var doc wpl
	if err := xml.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("failed to parse playlist file: %w", err)
	}

	wplDir := filepath.Dir(wplPath)
	count := 0
	for _, media := range doc.Body.Seq.Media {
		src := strings.ReplaceAll(media.Src, "\\", "/")
		resolved := resolveEntry(src, wplDir, mediaDir)
		p.Add(resolved, filepath.Base(src))
		count++
	}
	return count, nil
}

// resolveEntry tries the playlist directory first, then the media
// directory, and finally falls back to the bare filename.
func resolveEntry(src, wplDir, mediaDir string) string {
	if !filepath.IsAbs(src) {
		candidate := filepath.Join(wplDir, src)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	candidate := filepath.Join(mediaDir, filepath.Base(src))
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}

	return filepath.Base(src)
}
