package transcripts

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// unknownSpeaker tags cues whose text carries no speaker label.
const unknownSpeaker = 99

var speakerPattern = regexp.MustCompile(`^\[\w+_(\d+)\]: (.+)`)

// Cue is one parsed SRT subtitle block.
type Cue struct {
	Index int
	Start string
	End   string
	Text  string
}

// Speaker splits the diarization label off a cue's text. Unlabelled cues
// belong to the unknown speaker and keep their text as-is.
func (c Cue) Speaker() (int, string) {
	match := speakerPattern.FindStringSubmatch(c.Text)
	if match == nil {
		return unknownSpeaker, c.Text
	}
	speaker, err := strconv.Atoi(match[1])
	if err != nil {
		return unknownSpeaker, c.Text
	}
	return speaker, match[2]
}

// ParseSRT reads SubRip content into cues. Blocks are separated by blank
// lines; each holds a numeric index, a timing line, and the text.
func ParseSRT(data []byte) ([]Cue, error) {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimPrefix(content, "\ufeff")

	var cues []Cue
	for _, block := range strings.Split(strings.TrimSpace(content), "\n\n") {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			continue
		}

		index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
		if err != nil {
			return nil, fmt.Errorf("parse cue index %q: %w", lines[0], err)
		}

		start, end, ok := strings.Cut(lines[1], "-->")
		if !ok {
			return nil, fmt.Errorf("parse cue %d: missing timing line", index)
		}

		cues = append(cues, Cue{
			Index: index,
			Start: strings.TrimSpace(start),
			End:   strings.TrimSpace(end),
			Text:  strings.Join(lines[2:], "\n"),
		})
	}
	return cues, nil
}

// FileInfo is the metadata encoded in a transcript's filename, which follows
// "YYYYMMDD - Title - <vod_id>.srt". Titles may themselves contain " - ".
type FileInfo struct {
	VodID string
	Title string
	Date  string
}

// ParseFilename decodes a transcript file stem.
func ParseFilename(stem string) (FileInfo, error) {
	parts := strings.Split(stem, " - ")
	if len(parts) < 2 {
		return FileInfo{}, fmt.Errorf("transcript filename %q: want \"date - title - vod\"", stem)
	}

	date := parts[0]
	if len(date) < 8 {
		return FileInfo{}, fmt.Errorf("transcript filename %q: bad date %q", stem, date)
	}
	date = fmt.Sprintf("%s-%s-%s", date[:4], date[4:6], date[6:8])

	info := FileInfo{
		VodID: parts[len(parts)-1],
		Title: strings.Join(parts[1:len(parts)-1], " - "),
		Date:  date,
	}
	if info.Title == "" {
		info.Title = fallbackTitle(info.VodID)
	}
	return info, nil
}

// fallbackTitle builds a display title from the VOD id when the filename
// carries no title segment.
func fallbackTitle(vodID string) string {
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range vodID {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		title = "Untitled Stream"
	}
	return cases.Title(language.Und).String(title)
}
