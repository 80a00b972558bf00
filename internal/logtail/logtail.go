package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one decoded log line.
type Entry struct {
	Time    time.Time
	Level   string
	Logger  string
	Message string
	Fields  map[string]any

	// Raw holds the line when it is not a JSON entry.
	Raw string
}

const timeLayout = "2006-01-02T15:04:05.000Z0700"

var reserved = map[string]bool{
	"timestamp":  true,
	"level":      true,
	"logger":     true,
	"message":    true,
	"caller":     true,
	"stacktrace": true,
}

// Parse decodes a JSON log line. Lines that are not JSON objects are returned
// with only Raw set.
func Parse(line string) Entry {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return Entry{Raw: line}
	}

	var obj map[string]any
	if err := sonic.UnmarshalString(trimmed, &obj); err != nil {
		return Entry{Raw: line}
	}

	e := Entry{
		Level:   strings.ToUpper(stringField(obj, "level")),
		Logger:  stringField(obj, "logger"),
		Message: stringField(obj, "message"),
	}
	if e.Level == "" && e.Message == "" {
		return Entry{Raw: line}
	}
	if ts := stringField(obj, "timestamp"); ts != "" {
		if t, err := time.Parse(timeLayout, ts); err == nil {
			e.Time = t
		}
	}
	for k, v := range obj {
		if reserved[k] {
			continue
		}
		if e.Fields == nil {
			e.Fields = make(map[string]any)
		}
		e.Fields[k] = v
	}
	return e
}

// String renders the entry as "15:04:05 INFO  logger: message key=value".
func (e Entry) String() string {
	if e.Level == "" && e.Message == "" {
		return e.Raw
	}

	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.Format("15:04:05"))
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "%-5s ", e.Level)
	b.WriteString(e.Body())
	return b.String()
}

// Body renders the logger name, message and fields of the entry.
func (e Entry) Body() string {
	var b strings.Builder
	if e.Logger != "" {
		b.WriteString(e.Logger)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Fields[k])
	}
	return b.String()
}

// Format decodes and renders a single line.
func Format(line string) string {
	return Parse(line).String()
}

// FormatLines renders every line.
func FormatLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Format(line)
	}
	return out
}

func stringField(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return ""
}
