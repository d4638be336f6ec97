package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\s]+`)

func EnsureDirectory(dirPath string) error {
	if dirPath == "" {
		return fmt.Errorf("directory path cannot be empty")
	}

	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return fmt.Errorf("cannot resolve absolute path for %s: %w", dirPath, err)
	}

	if err := os.MkdirAll(absPath, 0o755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", absPath, err)
	}

	return nil
}

func FormatDuration(duration time.Duration) string {
	if duration < time.Second {
		return fmt.Sprintf("%d ms", duration.Milliseconds())
	}

	if duration < time.Minute {
		return fmt.Sprintf("%.1f sec", duration.Seconds())
	}

	if duration < time.Hour {
		return fmt.Sprintf("%.1f min", duration.Minutes())
	}

	return fmt.Sprintf("%.1f hrs", duration.Hours())
}

func SanitizeFilename(filename string) string {
	filename = strings.TrimSpace(filename)
	filename = invalidFilenameChars.ReplaceAllString(filename, "_")

	if len(filename) > 100 {
		filename = filename[:100]
	}

	if filename == "" {
		filename = "unnamed"
	}

	return filename
}

// TruncateString shortens s to at most maxLength runes, ending in "..."
// when anything was cut. Newlines are folded to spaces.
func TruncateString(s string, maxLength int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}

	runes := []rune(s)
	if maxLength <= 3 {
		return string(runes[:maxLength])
	}

	return string(runes[:maxLength-3]) + "..."
}

func GenerateTimestamp() string {
	return time.Now().Format("2006-01-02_15-04-05")
}

func GenerateOutputFilename(baseName string, extension string) string {
	timestamp := GenerateTimestamp()
	sanitizedName := SanitizeFilename(baseName)

	if extension != "" && !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}

	return fmt.Sprintf("%s_%s%s", sanitizedName, timestamp, extension)
}
