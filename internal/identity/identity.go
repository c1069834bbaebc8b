package identity

import (
	"net/url"
	"regexp"
	"strings"
)

// Canonical identifier prefixes. Cross-source identifiers take the form
// "<service>:<native-id>" so records from different systems can be joined.
const (
	TwitchPrefix  = "twitch:"
	YouTubePrefix = "youtube:"
)

var (
	twitchURLPattern     = regexp.MustCompile(`(?i)v(\d+)(?:\.mp4)?$`)
	youtubeURLPattern    = regexp.MustCompile(`(?:youtu\.be/|youtube\.com/(?:embed/|v/|watch\?v=|watch\?.+&v=))([^&?/]+)`)
	twitchFilePattern    = regexp.MustCompile(`(?i)v(\d+)\.(?:mp4|mkv|webm|flv|ts)$`)
	youtubeSuffixPattern = regexp.MustCompile(` ([A-Za-z0-9_-]{11})$`)
	twitchNativePattern  = regexp.MustCompile(`^v\d+$`)
)

// Derive maps the available hint strings for one video to a canonical
// cross-source identifier. Rules are tried in precedence order and the first
// hit wins:
//
//  1. a manual identifier is returned verbatim
//  2. the source URL is sniffed for Twitch VOD tails and YouTube link forms
//  3. the original filename is sniffed for the same conventions
//
// The function is pure; identical inputs always yield identical output, which
// reconciliation passes rely on for idempotence. When nothing matches it
// returns ("", false) and the caller leaves the field unset for a later pass.
func Derive(manualID, sourceURL, originalFilename string) (string, bool) {
	if trimmed := strings.TrimSpace(manualID); trimmed != "" {
		return trimmed, true
	}

	if sourceURL != "" {
		if match := twitchURLPattern.FindStringSubmatch(sourceURL); match != nil {
			return TwitchPrefix + "v" + match[1], true
		}
		if match := youtubeURLPattern.FindStringSubmatch(sourceURL); match != nil {
			return YouTubePrefix + match[1], true
		}
	}

	if originalFilename != "" {
		if match := twitchFilePattern.FindStringSubmatch(originalFilename); match != nil {
			return TwitchPrefix + "v" + match[1], true
		}
		stem := stripExtension(originalFilename)
		if match := youtubeSuffixPattern.FindStringSubmatch(stem); match != nil {
			return YouTubePrefix + match[1], true
		}
	}

	return "", false
}

// IsTwitchVodID reports whether a native identifier follows the Twitch VOD
// convention ("v" plus digits).
func IsTwitchVodID(id string) bool {
	return twitchNativePattern.MatchString(id)
}

// YouTubeIDFromURL extracts the video identifier from the common YouTube URL
// shapes:
//
//	http://youtu.be/SA2iWivDJiE
//	http://www.youtube.com/watch?v=_oPAwA_Udwc&feature=feedu
//	http://www.youtube.com/embed/SA2iWivDJiE
//	http://www.youtube.com/v/SA2iWivDJiE?version=3
//
// Anything else returns ("", false).
func YouTubeIDFromURL(raw string) (string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	host := strings.ToLower(parsed.Hostname())
	switch host {
	case "youtu.be":
		id := strings.TrimPrefix(parsed.Path, "/")
		if id == "" {
			return "", false
		}
		return firstSegment(id), true
	case "youtube.com", "www.youtube.com", "m.youtube.com":
		if parsed.Path == "/watch" {
			id := parsed.Query().Get("v")
			if id == "" {
				return "", false
			}
			return id, true
		}
		for _, prefix := range []string{"/embed/", "/v/"} {
			if strings.HasPrefix(parsed.Path, prefix) {
				id := firstSegment(strings.TrimPrefix(parsed.Path, prefix))
				if id == "" {
					return "", false
				}
				return id, true
			}
		}
	}
	return "", false
}

func firstSegment(path string) string {
	if idx := strings.IndexByte(path, '/'); idx >= 0 {
		return path[:idx]
	}
	return path
}

func stripExtension(name string) string {
	if idx := strings.LastIndexByte(name, '.'); idx > 0 {
		return name[:idx]
	}
	return name
}
