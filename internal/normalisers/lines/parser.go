// Package lines recovers drive records from free-text output that lists one
// JSON object per line after a header.
//
// Output looks like:
//
//	Detected Drives:
//	{"driveName":"sda", ...}
//	{"driveName":"sdb", ...}
//
//	Scanning Drives:
//	[Quick Scan] sda: ok
//
// Collection starts after the header line and stops at the next non-blank
// line that ends with ':' or starts with "[INFO]".
package lines

import (
	"encoding/json"
	"strings"

	"github.com/custodia-labs/drivegate/internal/core/domain"
	"github.com/custodia-labs/drivegate/internal/core/ports/driven"
)

// logPrefix marks a log line that ends the listing.
const logPrefix = "[INFO]"

// Ensure Parser implements the interface.
var _ driven.OutputParser = (*Parser)(nil)

// Parser is the line-delimited heuristic.
type Parser struct {
	header string
}

// New creates a line parser for the given header.
// An empty header falls back to domain.DefaultListHeader.
func New(header string) *Parser {
	if header == "" {
		header = domain.DefaultListHeader
	}
	return &Parser{header: header}
}

// Header returns the line that starts collection.
func (p *Parser) Header() string {
	return p.header
}

// Mode returns the line heuristic tag.
func (p *Parser) Mode() domain.ParseMode {
	return domain.ParseModeLineHeuristic
}

// Parse never fails. Without the header it returns an empty list tagged
// domain.ParseModeNone; lines that are not JSON objects are skipped and
// counted.
func (p *Parser) Parse(stdout string) (domain.ParseOutcome, error) {
	var (
		items      []json.RawMessage
		skipped    int
		collecting bool
		found      bool
	)

	for _, line := range strings.Split(stdout, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == p.header {
			collecting = true
			found = true
			continue
		}
		if !collecting || trimmed == "" {
			continue
		}
		if strings.HasSuffix(trimmed, ":") || strings.HasPrefix(trimmed, logPrefix) {
			break
		}

		if obj, ok := parseObject(trimmed); ok {
			items = append(items, obj)
		} else {
			skipped++
		}
	}

	if !found {
		return domain.ParseOutcome{
			Payload: domain.ListPayload(nil),
			Mode:    domain.ParseModeNone,
		}, nil
	}

	return domain.ParseOutcome{
		Payload: domain.ListPayload(items),
		Mode:    domain.ParseModeLineHeuristic,
		Skipped: skipped,
	}, nil
}

// parseObject accepts a line only if it is one complete JSON object.
func parseObject(line string) (json.RawMessage, bool) {
	if !strings.HasPrefix(line, "{") {
		return nil, false
	}
	data := []byte(line)
	if !json.Valid(data) {
		return nil, false
	}
	return json.RawMessage(data), true
}
