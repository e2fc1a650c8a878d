package ad

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// batchTimestamp 批次时间戳，格式 MMDD_HHMM，和批次目录名保持一致
func batchTimestamp() string {
	return time.Now().Format("0102_1504")
}

// writeJSON 带缩进落盘 JSON，父目录不存在时先创建
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeText 落盘文本，父目录不存在时先创建
func writeText(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// latestDirWithPrefix 找 base 下以 prefix 开头、修改时间最新的子目录
func latestDirWithPrefix(base, prefix string) (string, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return "", fmt.Errorf("read dir %s: %w", base, err)
	}

	var newest string
	var newestAt time.Time
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestAt) {
			newest = e.Name()
			newestAt = info.ModTime()
		}
	}
	if newest == "" {
		return "", fmt.Errorf("no directory with prefix %q under %s", prefix, base)
	}
	return filepath.Join(base, newest), nil
}

// latestFileMatching 找 dir 下匹配 pattern 且修改时间最新的文件
func latestFileMatching(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("glob %s: %w", pattern, err)
	}

	var newest string
	var newestAt time.Time
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		if newest == "" || info.ModTime().After(newestAt) {
			newest = m
			newestAt = info.ModTime()
		}
	}
	if newest == "" {
		return "", fmt.Errorf("no file matching %q under %s", pattern, dir)
	}
	return newest, nil
}

// stem 文件名去掉扩展名
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
