// Package chatlog reads the metadata headers of downloaded Twitch chat
// replay files.
package chatlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Metadata is the video header stored at the top of a chat replay file.
type Metadata struct {
	Title string `json:"title"`
	Game  string `json:"game"`
}

type chatFile struct {
	Video Metadata `json:"video"`
}

// Reader locates chat replay files for VODs.
type Reader struct {
	dir string
}

// NewReader returns a reader over the given chat log directory.
func NewReader(dir string) *Reader {
	return &Reader{dir: dir}
}

// Filename maps a chat identifier to its on-disk replay file. Chat files are
// named by the bare numeric Twitch ID, without the "v" prefix.
func (r *Reader) Filename(chatID string) string {
	return filepath.Join(r.dir, strings.TrimPrefix(chatID, "v")+".json")
}

// Lookup reads the metadata header for a chat identifier. A missing file
// means no chat was captured for that VOD; that is not an error.
func (r *Reader) Lookup(chatID string) (*Metadata, error) {
	if chatID == "" {
		return nil, nil
	}
	data, err := os.ReadFile(r.Filename(chatID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read chat log for %s: %w", chatID, err)
	}

	var file chatFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode chat log for %s: %w", chatID, err)
	}
	return &file.Video, nil
}
