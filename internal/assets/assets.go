// Package assets resolves on-disk media files by RFID stem. Images and audio
// resolve to paths relative to the scanner web app; videos resolve to a bare
// filename served by the backend.
package assets

import (
	"os"
	"path/filepath"
	"strings"
)

var (
	imageExtensions = []string{".bmp", ".jpg", ".png", ".jpeg"}
	audioExtensions = []string{".mp3", ".wav", ".ogg"}
)

// PlaceholderImage is the fallback path recorded for memory tokens without a
// custom image.
const PlaceholderImage = "assets/images/placeholder.bmp"

// Library locates token media across the consumer directory trees.
type Library struct {
	ImagesDir string
	AudioDir  string
	VideosDir string
}

// FindImage returns the scanner-relative path of the token's image, or "".
func (l Library) FindImage(rfid string) string {
	return find(l.ImagesDir, "assets/images", rfid, imageExtensions)
}

// FindAudio returns the scanner-relative path of the token's audio, or "".
func (l Library) FindAudio(rfid string) string {
	return find(l.AudioDir, "assets/audio", rfid, audioExtensions)
}

// FindVideo returns the bare filename of the token's video, or "".
func (l Library) FindVideo(rfid string) string {
	if rfid == "" {
		return ""
	}
	if _, err := os.Stat(filepath.Join(l.VideosDir, rfid+".mp4")); err == nil {
		return rfid + ".mp4"
	}
	if name := scanInsensitive(l.VideosDir, rfid, []string{".mp4"}); name != "" {
		return name
	}
	return ""
}

// HasPlaceholder reports whether the fallback placeholder image exists.
func (l Library) HasPlaceholder() bool {
	_, err := os.Stat(filepath.Join(l.ImagesDir, "placeholder.bmp"))
	return err == nil
}

func find(dir, prefix, rfid string, extensions []string) string {
	if rfid == "" {
		return ""
	}

	for _, ext := range extensions {
		if _, err := os.Stat(filepath.Join(dir, rfid+ext)); err == nil {
			return prefix + "/" + rfid + ext
		}
	}

	if name := scanInsensitive(dir, rfid, extensions); name != "" {
		return prefix + "/" + name
	}
	return ""
}

// scanInsensitive matches the RFID against file stems ignoring case.
func scanInsensitive(dir, rfid string, extensions []string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	want := strings.ToLower(rfid)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if strings.ToLower(stem) != want {
			continue
		}
		for _, candidate := range extensions {
			if ext == candidate {
				return name
			}
		}
	}
	return ""
}
