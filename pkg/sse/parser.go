// Package sse consumes chunked HTTP responses as server-sent-event streams.
//
// The chat and ingestion flows both read their progress through this package:
// a Client opens the request, a Parser reassembles events from arbitrarily
// split byte chunks, and each event's data payload is handed to the caller as
// decoded JSON. A malformed frame is skipped, never fatal for the stream.
package sse

import (
	"bytes"
	"strings"
)

// Event is a single server-sent event reassembled from the wire.
type Event struct {
	// Name is the value of the "event:" field, empty for the default type.
	Name string
	// Data is the concatenated "data:" payload, one line per data field.
	Data string
	// ID is the value of the "id:" field, if any.
	ID string
}

// Parser incrementally reassembles server-sent events from raw byte chunks.
//
// Chunks may split events anywhere, including mid UTF-8 sequence and mid JSON
// token; bytes are buffered until a blank-line event boundary arrives, so the
// reassembled event is byte-identical to one delivered in a single chunk.
// A Parser is not safe for concurrent use.
type Parser struct {
	buf bytes.Buffer
}

// NewParser creates an empty stream parser.
func NewParser() *Parser {
	return &Parser{}
}

// Feed appends a raw chunk and returns every event completed by it, in order.
func (p *Parser) Feed(chunk []byte) []Event {
	p.buf.Write(chunk)

	var events []Event
	for {
		raw, ok := p.nextBlock()
		if !ok {
			return events
		}
		if ev, ok := parseBlock(raw); ok {
			events = append(events, ev)
		}
	}
}

// nextBlock cuts one complete event block (terminated by a blank line) off the
// front of the buffer. Both \n\n and \r\n\r\n terminators are accepted.
func (p *Parser) nextBlock() (string, bool) {
	data := p.buf.Bytes()

	idxLF := bytes.Index(data, []byte("\n\n"))
	idxCRLF := bytes.Index(data, []byte("\r\n\r\n"))

	idx, skip := idxLF, 2
	if idx == -1 || (idxCRLF != -1 && idxCRLF < idx) {
		idx, skip = idxCRLF, 4
	}
	if idx == -1 {
		return "", false
	}

	block := string(data[:idx])
	p.buf.Next(idx + skip)
	return block, true
}

// parseBlock parses one event block into an Event. Blocks carrying no data
// field (comments, bare ids) report ok=false and are dropped.
func parseBlock(block string) (Event, bool) {
	var ev Event
	var dataLines []string

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}

		field, value := line, ""
		if i := strings.Index(line, ":"); i >= 0 {
			field = line[:i]
			value = strings.TrimPrefix(line[i+1:], " ")
		}

		switch field {
		case "event":
			ev.Name = value
		case "data":
			dataLines = append(dataLines, value)
		case "id":
			ev.ID = value
		}
	}

	if len(dataLines) == 0 {
		return Event{}, false
	}
	ev.Data = strings.Join(dataLines, "\n")
	return ev, true
}
