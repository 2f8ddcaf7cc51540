package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// timestampToken is substituted in sink filenames at write time.
const timestampToken = "{timestamp}"

const timestampLayout = "20060102_150405"

// FileSink writes report artifacts to disk. Structured values are
// serialized as indented JSON; plain strings are written verbatim.
type FileSink struct {
	defaultPath string
	now         func() time.Time
}

func NewFileSink(defaultPath string) *FileSink {
	if defaultPath == "" {
		defaultPath = filepath.Join("reports", "report.json")
	}
	return &FileSink{defaultPath: defaultPath, now: time.Now}
}

// Write persists v under name, using the sink's default path when name is
// empty. A {timestamp} placeholder in the name is replaced with the
// current time. Returns the resolved path.
func (s *FileSink) Write(name string, v any) (string, error) {
	if name == "" {
		name = s.defaultPath
	}
	if strings.Contains(name, timestampToken) {
		name = strings.ReplaceAll(name, timestampToken, s.now().Format(timestampLayout))
	}

	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create report directory: %w", err)
		}
	}

	var data []byte
	switch val := v.(type) {
	case string:
		data = []byte(val)
	default:
		b, err := json.MarshalIndent(v, "", "    ")
		if err != nil {
			return "", fmt.Errorf("marshal report: %w", err)
		}
		data = b
	}

	if err := os.WriteFile(name, data, 0o644); err != nil {
		return "", fmt.Errorf("write report file: %w", err)
	}
	return name, nil
}
