// Package logs splits aging entries out of the runtime log files into
// per-date archive files. Runs are idempotent: archive files are appended
// to, so re-running after a partial run is safe.
package logs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// DefaultCutoffDays is how old an entry must be before archival.
const DefaultCutoffDays = 14

// DefaultLogFiles are the runtime logs the archiver processes.
var DefaultLogFiles = []string{
	"combined.log",
	"error.log",
	"out.log",
	"vlc-error.log",
	"exceptions.log",
	"rejections.log",
}

var (
	// "2025-10-31 15:28:57 -07:00: {...}"
	leadingTimestampPattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}) \d{2}:\d{2}:\d{2}[^:]*:\s*`)
	// {"timestamp":"2025-10-31 15:28:57.916",...}
	jsonTimestampPattern = regexp.MustCompile(`"timestamp":"(\d{4}-\d{2}-\d{2})`)
)

// ParseLineDate extracts the date from a log line, trying the leading
// timestamp shape first and the JSON timestamp field second. Lines with
// neither have no date and are always retained.
func ParseLineDate(line string) (time.Time, bool) {
	if m := leadingTimestampPattern.FindStringSubmatch(line); m != nil {
		if d, err := time.Parse("2006-01-02", m[1]); err == nil {
			return d, true
		}
	}
	if m := jsonTimestampPattern.FindStringSubmatch(line); m != nil {
		if d, err := time.Parse("2006-01-02", m[1]); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// FileResult reports what one ArchiveFile call did.
type FileResult struct {
	Archived int `json:"archived"`
	Retained int `json:"retained"`
}

// ArchiveFile moves entries dated before cutoff out of path into per-date
// files under archiveDir (`<base>_<YYYY-MM-DD>.log`, appended). When
// anything was archived, the original is copied to `<path>.backup` before
// the retained lines are written back. A missing file is not an error.
func ArchiveFile(path, archiveDir string, cutoff time.Time) (FileResult, error) {
	var res FileResult

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return res, nil
	}
	if err != nil {
		return res, err
	}

	archivedByDate := map[string][]string{}
	var retained []string

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if date, ok := ParseLineDate(line); ok && date.Before(cutoff) {
			key := date.Format("2006-01-02")
			archivedByDate[key] = append(archivedByDate[key], line)
			res.Archived++
		} else {
			retained = append(retained, line)
			res.Retained++
		}
	}
	if err := scanner.Err(); err != nil {
		f.Close()
		return res, err
	}
	f.Close()

	if res.Archived == 0 {
		return res, nil
	}

	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return res, err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	dates := make([]string, 0, len(archivedByDate))
	for d := range archivedByDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, date := range dates {
		target := filepath.Join(archiveDir, fmt.Sprintf("%s_%s.log", base, date))
		if err := appendLines(target, archivedByDate[date]); err != nil {
			return res, err
		}
	}

	if err := copyFile(path, path+".backup"); err != nil {
		return res, err
	}

	return res, writeLines(path, retained)
}

// Archive runs ArchiveFile over every name in files under dir, archiving
// into dir/archive. Per-file failures are collected, not fatal to the run.
func Archive(dir string, files []string, cutoff time.Time) (map[string]FileResult, []error) {
	if len(files) == 0 {
		files = DefaultLogFiles
	}
	archiveDir := filepath.Join(dir, "archive")

	results := map[string]FileResult{}
	var errs []error
	for _, name := range files {
		res, err := ArchiveFile(filepath.Join(dir, name), archiveDir, cutoff)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		results[name] = res
	}
	return results, errs
}

func appendLines(path string, lines []string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := f.WriteString(line + "\n"); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}

func writeLines(path string, lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
