package mbox

import (
	"errors"
	"fmt"
	"io"
	"os"

	mboxlib "github.com/emersion/go-mbox"
)

// ErrUnreadableArchive means the source mbox cannot be opened. Fatal for an
// ingestion run.
var ErrUnreadableArchive = errors.New("cannot read mbox archive")

// Scan iterates the entries of an mbox stream in a single pass, calling fn
// with each entry's raw bytes (headers and body, without the From_ separator
// line). Entry content is not validated here; boundary detection only.
func Scan(r io.Reader, fn func(raw []byte) error) error {
	reader := mboxlib.NewReader(r)

	for idx := 0; ; idx++ {
		msgReader, err := reader.NextMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("entry %d: %w", idx, err)
		}

		raw, err := io.ReadAll(msgReader)
		if err != nil {
			return fmt.Errorf("entry %d read: %w", idx, err)
		}

		if err := fn(raw); err != nil {
			return err
		}
	}
}

// ScanFile opens an mbox file and scans its entries.
func ScanFile(path string, fn func(raw []byte) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnreadableArchive, err)
	}
	defer file.Close()

	return Scan(file, fn)
}
