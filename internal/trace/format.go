package trace

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Format is the rendering of trace events.
type Format uint8

const (
	FormatAuto   Format = iota // pick from the output path
	FormatText                 // one human-readable line per event
	FormatNDJSON               // one JSON object per line
)

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, true
	case "text":
		return FormatText, true
	case "ndjson", "jsonl":
		return FormatNDJSON, true
	}
	return FormatAuto, false
}

// FormatEvent renders ev as one newline-terminated line.
func FormatEvent(ev *Event, format Format) []byte {
	return AppendEvent(nil, ev, format)
}

// AppendEvent appends the rendering of ev to buf.
func AppendEvent(buf []byte, ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return appendNDJSON(buf, ev)
	}
	return appendText(buf, ev)
}

type jsonEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id"`
	ParentID uint64            `json:"parent_id,omitempty"`
	GID      uint64            `json:"gid,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

func appendNDJSON(buf []byte, ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:     ev.Time.Format(time.RFC3339Nano),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		GID:      ev.GID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Extra:    ev.Extra,
	})
	if err != nil {
		return buf
	}
	buf = append(buf, data...)
	return append(buf, '\n')
}

var kindMarks = [...]string{
	KindSpanBegin: "→ ",
	KindSpanEnd:   "← ",
	KindPoint:     "• ",
	KindHeartbeat: "♡ ",
}

// appendText renders
//
//	15:04:05.000 #seq [scope] g<gid> → name (detail) {k=v, ...}
func appendText(buf []byte, ev *Event) []byte {
	buf = ev.Time.AppendFormat(buf, "15:04:05.000")
	buf = append(buf, " #"...)
	buf = strconv.AppendUint(buf, ev.Seq, 10)
	buf = append(buf, " ["...)
	buf = append(buf, ev.Scope.String()...)
	buf = append(buf, "] "...)
	if ev.GID != 0 {
		buf = append(buf, 'g')
		buf = strconv.AppendUint(buf, ev.GID, 10)
		buf = append(buf, ' ')
	}
	if int(ev.Kind) < len(kindMarks) {
		buf = append(buf, kindMarks[ev.Kind]...)
	}
	buf = append(buf, ev.Name...)
	if ev.Detail != "" {
		buf = append(buf, " ("...)
		buf = append(buf, ev.Detail...)
		buf = append(buf, ')')
	}
	if len(ev.Extra) > 0 {
		keys := make([]string, 0, len(ev.Extra))
		for k := range ev.Extra {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		buf = append(buf, " {"...)
		for i, k := range keys {
			if i > 0 {
				buf = append(buf, ", "...)
			}
			buf = append(buf, k...)
			buf = append(buf, '=')
			buf = append(buf, ev.Extra[k]...)
		}
		buf = append(buf, '}')
	}
	return append(buf, '\n')
}
