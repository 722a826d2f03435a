package ingest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseLogfmt decodes `run=... step=build done=true expected=3s ts=...` lines.
// expectedMs is accepted as an alternative to expected.
func parseLogfmt(line string) (Event, error) {
	kv := splitLogfmt(line)
	step := strings.TrimSpace(kv["step"])
	if step == "" {
		return Event{}, errors.New("ingest: event without step")
	}
	ev := Event{Run: kv["run"], Step: step, Raw: line}
	if v, ok := kv["done"]; ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Event{}, fmt.Errorf("ingest: bad done %q", v)
		}
		ev.Done = b
	}
	if v, ok := kv["expected"]; ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Event{}, fmt.Errorf("ingest: bad expected %q", v)
		}
		ev.Expected = d
	} else if v, ok := kv["expectedMs"]; ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Event{}, fmt.Errorf("ingest: bad expectedMs %q", v)
		}
		ev.Expected = time.Duration(n) * time.Millisecond
	}
	if v, ok := kv["ts"]; ok {
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			ev.When = t
		}
	}
	if ev.When.IsZero() {
		ev.When = time.Now()
	}
	return ev, nil
}

// splitLogfmt splits key=value pairs; double quotes group values with spaces.
func splitLogfmt(s string) map[string]string {
	res := map[string]string{}
	var cur strings.Builder
	key := ""
	inQuote := false
	flush := func() {
		if key != "" {
			res[key] = cur.String()
		}
		key = ""
		cur.Reset()
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inQuote = !inQuote
		case !inQuote && (c == ' ' || c == '\t'):
			flush()
		case !inQuote && c == '=' && key == "":
			key = cur.String()
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return res
}
