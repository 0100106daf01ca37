package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// JSONFormatter renders an Entry as a single line of JSON.
type JSONFormatter struct{}

func (JSONFormatter) Format(entry *Entry) ([]byte, error) {
	doc := make(map[string]interface{}, len(entry.Fields)+4)
	for k, v := range entry.Fields {
		doc[k] = v
	}
	doc["level"] = entry.Level.String()
	doc["msg"] = entry.Message
	doc["time"] = entry.Timestamp.Format("2006-01-02T15:04:05.000Z07:00")
	if entry.Caller != "" {
		doc["caller"] = entry.Caller
	}
	if entry.Error != nil {
		doc["error"] = entry.Error.Error()
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("log: marshaling entry: %w", err)
	}
	return append(b, '\n'), nil
}

// TextFormatter renders an Entry as a human-readable line with
// deterministically ordered key=value fields.
type TextFormatter struct{}

func (TextFormatter) Format(entry *Entry) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %-5s %s",
		entry.Timestamp.Format("2006-01-02T15:04:05.000Z07:00"),
		entry.Level.String(),
		entry.Message,
	)
	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&buf, " %s=%v", k, entry.Fields[k])
	}
	if entry.Caller != "" {
		fmt.Fprintf(&buf, " caller=%s", entry.Caller)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
