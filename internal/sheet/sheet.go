// Package sheet reads the stream-schedule spreadsheet export: a TSV with
// human dates like "Mon, 5/1/2023", the game played, and mirror links.
package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"vodsync/internal/identity"
)

// sheetDateLayout matches the spreadsheet's display format.
const sheetDateLayout = "Mon, 1/2/2006"

// ParseDate converts a spreadsheet date to YYYY-MM-DD.
func ParseDate(value string) (string, error) {
	parsed, err := time.Parse(sheetDateLayout, value)
	if err != nil {
		return "", fmt.Errorf("parse sheet date %q: %w", value, err)
	}
	return parsed.Format("2006-01-02"), nil
}

// ParseDateCompact converts a spreadsheet date to YYYYMMDD.
func ParseDateCompact(value string) (string, error) {
	parsed, err := time.Parse(sheetDateLayout, value)
	if err != nil {
		return "", fmt.Errorf("parse sheet date %q: %w", value, err)
	}
	return parsed.Format("20060102"), nil
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

// ConvertDates rewrites the schedule with normalized dates. Rows whose date
// cell is blank or malformed inherit the date of the last valid row above
// them, since the sheet only writes the date on the first stream of a day.
func ConvertDates(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open schedule: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create dates output: %w", err)
	}
	defer out.Close()

	reader := newReader(in)
	writer := csv.NewWriter(out)
	writer.Comma = '\t'

	lastDate := ""
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read schedule: %w", err)
		}
		if len(row) == 0 || row[0] == "" {
			continue
		}

		if len(row) >= 3 {
			if date, err := ParseDate(row[1]); err == nil {
				row[1] = date
				lastDate = date
			} else if lastDate != "" {
				row[1] = lastDate
			}
		} else if lastDate != "" {
			row = append([]string{row[0], lastDate}, row[1:]...)
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write dates output: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush dates output: %w", err)
	}
	return nil
}

// GamesByDate reads the converted schedule and groups the games played on
// each date, preserving sheet order.
func GamesByDate(path string) (map[string][]string, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dates file: %w", err)
	}
	defer in.Close()

	games := make(map[string][]string)
	reader := newReader(in)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dates file: %w", err)
		}
		if len(row) < 3 {
			continue
		}
		date, game := row[1], row[2]
		games[date] = append(games[date], game)
	}
	return games, nil
}

// VideoRef is one YouTube link found in the schedule, tagged with the
// stream's date in compact YYYYMMDD form.
type VideoRef struct {
	Date    string
	VideoID string
}

// YouTubeRefs scans every cell of the schedule for YouTube links.
func YouTubeRefs(path string) ([]VideoRef, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schedule: %w", err)
	}
	defer in.Close()

	var refs []VideoRef
	lastDate := ""
	reader := newReader(in)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read schedule: %w", err)
		}
		if len(row) == 0 || row[0] == "" {
			continue
		}
		if len(row) >= 2 {
			if date, err := ParseDateCompact(row[1]); err == nil {
				lastDate = date
			}
		}
		for _, cell := range row {
			if id, ok := identity.YouTubeIDFromURL(cell); ok {
				refs = append(refs, VideoRef{Date: lastDate, VideoID: id})
			}
		}
	}
	return refs, nil
}
