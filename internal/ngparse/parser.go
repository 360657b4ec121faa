// Package ngparse recognizes NovaGenesis command payloads and extracts
// role-tagged identifiers from them.
//
// Payload sub-grammar, fixed here for every command variant:
//
//	command := "ng -" name options* [ "[" vector* "]" ]
//	vector  := "<" count "s" id... ">"
//
// Identifiers are upper-case hexadecimal strings of at least 8 digits.
// A "< 1 s ID >" vector carries a single entity id; a
// "< 4 s HID OSID PID BID >" vector carries a host/OS/process/bind tuple,
// whose process id is the third element. Inside an "m" block the first
// 4-tuple names the source and the second names the destination; the
// "< 1 s >" vector names the device. Other commands resolve identity from
// the "m" envelope when the payload carries one, otherwise from their own
// block, where a single 4-tuple names the destination.
package ngparse

import (
	"path"
	"regexp"
	"strings"

	"github.com/antonioalberti/ng5Gdata/internal/core"
)

var (
	commandRe = regexp.MustCompile(`ng\s+-([a-zA-Z0-9_-]+)`)
	blockRe   = regexp.MustCompile(`ng\s+-([a-zA-Z0-9_-]+)([^\[\]]*)\[([^\]]*)\]`)
	vectorRe  = regexp.MustCompile(`<([^<>]*)>`)
	hexIDRe   = regexp.MustCompile(`^[0-9A-F]{8,}$`)
)

// Fields is the parse result for one payload.
type Fields struct {
	Command     core.Command
	SourcePID   string
	DestPID     string
	DeviceID    string
	PayloadMeta *core.PayloadMeta
	Annotation  string
}

// Parse extracts command fields from one payload text. The earliest
// recognized command token determines the command kind. Malformed text is
// never an error; the second return is false when no recognized command is
// present and the message should be dropped.
func Parse(text string) (Fields, bool) {
	fields := Fields{Command: core.CommandOther}

	for _, m := range commandRe.FindAllStringSubmatch(text, -1) {
		if cmd := core.Command(m[1]); cmd.Known() {
			fields.Command = cmd
			break
		}
	}
	if !fields.Command.Known() {
		return fields, false
	}

	blocks := parseBlocks(text)

	// Identity comes from the m envelope when present; a standalone
	// command block is its own identity source.
	if mb, ok := findBlock(blocks, core.CommandM); ok {
		src, dst := pidsFromVectors(mb.vectors, false)
		fields.SourcePID = src
		fields.DestPID = dst
		if fields.Command == core.CommandM {
			fields.DeviceID = deviceFromVectors(mb.vectors)
		}
	} else if cb, ok := findBlock(blocks, fields.Command); ok {
		src, dst := pidsFromVectors(cb.vectors, true)
		fields.SourcePID = src
		fields.DestPID = dst
	}

	if fields.Command != core.CommandM {
		if cb, ok := findBlock(blocks, fields.Command); ok {
			fields.PayloadMeta = metaFromVectors(cb.vectors)
			fields.Annotation = annotate(fields.Command, cb, fields.PayloadMeta)
		}
	}

	return fields, true
}

// block is one "ng -name options [ ... ]" occurrence.
type block struct {
	name    core.Command
	options string
	inner   string
	vectors [][]string
}

func parseBlocks(text string) []block {
	matches := blockRe.FindAllStringSubmatch(text, -1)
	blocks := make([]block, 0, len(matches))
	for _, m := range matches {
		b := block{
			name:    core.Command(m[1]),
			options: m[2],
			inner:   m[3],
		}
		for _, v := range vectorRe.FindAllStringSubmatch(b.inner, -1) {
			if tokens := strings.Fields(v[1]); len(tokens) > 0 {
				b.vectors = append(b.vectors, tokens)
			}
		}
		blocks = append(blocks, b)
	}
	return blocks
}

func findBlock(blocks []block, name core.Command) (block, bool) {
	for _, b := range blocks {
		if b.name == name {
			return b, true
		}
	}
	return block{}, false
}

// pidsFromVectors extracts source and destination process ids from the
// 4-tuples of a block. With soloIsDest set, a lone 4-tuple names the
// destination rather than the source.
func pidsFromVectors(vectors [][]string, soloIsDest bool) (src, dst string) {
	var pids []string
	for _, vec := range vectors {
		if len(vec) >= 6 && vec[0] == "4" && vec[1] == "s" && hexIDRe.MatchString(vec[4]) {
			pids = append(pids, vec[4]) // third id of HID OSID PID BID
		}
	}
	switch {
	case len(pids) >= 2:
		return pids[0], pids[1]
	case len(pids) == 1 && soloIsDest:
		return "", pids[0]
	case len(pids) == 1:
		return pids[0], ""
	}
	return "", ""
}

// deviceFromVectors returns the id of the first "< 1 s ID >" vector.
func deviceFromVectors(vectors [][]string) string {
	for _, vec := range vectors {
		if len(vec) >= 3 && vec[0] == "1" && vec[1] == "s" && hexIDRe.MatchString(vec[2]) {
			return vec[2]
		}
	}
	return ""
}

// metaFromVectors returns the first transferable file reference found in a
// block. Only .txt and .jpg references matter for display.
func metaFromVectors(vectors [][]string) *core.PayloadMeta {
	for _, vec := range vectors {
		for _, token := range vec {
			ext := strings.ToLower(path.Ext(token))
			if ext == ".txt" || ext == ".jpg" {
				return &core.PayloadMeta{Filename: token, Extension: ext}
			}
		}
	}
	return nil
}

// hexIDs returns one identifier per vector, in vector order. A vector names
// one thing; when it carries several hex tokens (a HID OSID PID BID tuple)
// the last one is the identifier of interest.
func hexIDs(b block) []string {
	var ids []string
	for _, vec := range b.vectors {
		for i := len(vec) - 1; i >= 0; i-- {
			if hexIDRe.MatchString(vec[i]) {
				ids = append(ids, vec[i])
				break
			}
		}
	}
	return ids
}

// annotate builds the display annotation for a non-m command block.
func annotate(cmd core.Command, b block, meta *core.PayloadMeta) string {
	switch cmd {
	case core.CommandInfo:
		if meta != nil {
			return "Payload: " + meta.Filename
		}
		if len(b.vectors) > 0 {
			last := b.vectors[len(b.vectors)-1]
			return "Payload: " + last[len(last)-1]
		}
	case core.CommandNotify:
		if meta != nil {
			return "Notify: " + meta.Filename
		}
	case core.CommandP:
		if strings.Contains(b.options, "--notify") || strings.Contains(b.inner, "--notify") {
			if meta != nil {
				return "Publish & Notify: " + meta.Filename
			}
			// A notifying publish without a file reference has nothing to
			// show; it never falls back to the hash listing.
			return ""
		}
		if strings.Contains(b.options, "--b") || strings.Contains(b.inner, "--b") {
			if ids := hexIDs(b); len(ids) > 0 {
				shown := ids
				suffix := ""
				if len(shown) > 3 {
					shown = shown[:3]
					suffix = "..."
				}
				return "Publish hashes: " + strings.Join(shown, ", ") + suffix
			}
		}
	case core.CommandSCN:
		if ids := hexIDs(b); len(ids) > 0 {
			return "Sequence hash: " + ids[0]
		}
	}
	return ""
}
