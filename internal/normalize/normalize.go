package normalize

import (
	"errors"
	"fmt"
	"net/mail"
	"net/textproto"
	"strings"

	"github.com/chadaustin/gmail-mbox-analyzer/internal/models"
	"github.com/jhillyerd/enmime"
)

// Fallback sentinels stored when a field cannot be resolved from the entry's
// headers.
const (
	UnlabeledSentinel     = "Unlabeled"
	UnknownSenderSentinel = "(unknown sender)"
	NoSubjectSentinel     = "(no subject)"
)

// ErrUnparsableEntry means an entry's header section could not be parsed at
// all. Callers skip the entry and continue; this is never fatal for a run.
var ErrUnparsableEntry = errors.New("unparsable message headers")

// Record is one normalized entry: the metadata row plus its labels. Labels
// are kept exactly as split from the header, without dedup; the store
// deduplicates pairs at write time.
type Record struct {
	Message models.MessageRecord
	Labels  []string
}

const (
	headerDate        = "Date"
	headerGmailLabels = "X-Gmail-Labels"
	headerSender      = "Sender"
)

// Normalize parses the header section of one raw mbox entry and applies the
// fallback policy for each field. Size is the byte length of the whole raw
// entry, independent of how header parsing fares.
func Normalize(raw []byte) (*Record, error) {
	headers, err := enmime.DecodeHeaders(raw, headerGmailLabels, headerSender)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnparsableEntry, err)
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: no header section", ErrUnparsableEntry)
	}

	rawDate := headers.Get(headerDate)

	record := models.MessageRecord{
		Size:        uint64(len(raw)),
		FromAddress: resolveFromAddress(headers),
		Date:        resolveDate(rawDate),
		RawDate:     rawDate,
		Subject:     resolveSubject(headers),
	}

	return &Record{
		Message: record,
		Labels:  resolveLabels(headers),
	}, nil
}

// resolveFromAddress picks the sender address: first address of the From
// header, falling back to the Sender header. Address list parsing flattens
// group syntax, so the first member of a leading group is also covered. The
// first header that parses to at least one address wins.
func resolveFromAddress(headers textproto.MIMEHeader) string {
	for _, name := range []string{"From", headerSender} {
		value := headers.Get(name)
		if value == "" {
			continue
		}
		addrs, err := mail.ParseAddressList(value)
		if err == nil && len(addrs) > 0 {
			return addrs[0].Address
		}
	}
	return UnknownSenderSentinel
}

// resolveDate parses the Date header into a unix timestamp. Absent or
// malformed dates resolve to epoch zero; the caller still preserves the raw
// header text so the two can diverge.
func resolveDate(rawDate string) int64 {
	if rawDate == "" {
		return 0
	}
	t, err := mail.ParseDate(rawDate)
	if err != nil {
		return 0
	}
	return t.Unix()
}

func resolveSubject(headers textproto.MIMEHeader) string {
	if subject := headers.Get("Subject"); subject != "" {
		return subject
	}
	return NoSubjectSentinel
}

// resolveLabels splits the Gmail label header on commas, trimming surrounding
// whitespace and stripping embedded line breaks from each piece. Pieces are
// kept as-is, duplicates included. No label header means the single sentinel
// label.
func resolveLabels(headers textproto.MIMEHeader) []string {
	value := headers.Get(headerGmailLabels)
	if value == "" {
		return []string{UnlabeledSentinel}
	}

	stripBreaks := strings.NewReplacer("\r", "", "\n", "")
	pieces := strings.Split(value, ",")
	labels := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		labels = append(labels, stripBreaks.Replace(strings.TrimSpace(piece)))
	}
	return labels
}
