// Package jsonl reads and writes Message records as line-delimited JSON,
// one object per line.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/antonioalberti/ng5Gdata/internal/core"
)

// Read decodes one Message per line. Malformed lines are counted and
// skipped; a capture session can leave a truncated trailing line behind
// and that must not poison the whole dataset.
func Read(r io.Reader) (messages []core.Message, skipped int, err error) {
	scanner := bufio.NewScanner(r)
	// Payload text can make lines much longer than the scanner default.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var msg core.Message
		if err := json.Unmarshal([]byte(line), &msg); err != nil {
			skipped++
			continue
		}
		messages = append(messages, msg)
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("read records: %w", err)
	}
	return messages, skipped, nil
}

// Write encodes one Message per line.
func Write(w io.Writer, messages []core.Message) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for i := range messages {
		if err := enc.Encode(&messages[i]); err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
	}
	return bw.Flush()
}

// ReadFile reads all records from path.
func ReadFile(path string) ([]core.Message, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// WriteFile writes all records to path, replacing any previous content.
func WriteFile(path string, messages []core.Message) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := Write(f, messages); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
