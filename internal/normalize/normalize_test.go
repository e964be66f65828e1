package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(headers string) []byte {
	return []byte(headers + "\n\nbody text\n")
}

func TestNormalize_FullyPopulated(t *testing.T) {
	raw := entry("From: Alice <alice@x.com>\n" +
		"Date: Tue, 01 Mar 2022 10:30:00 +0000\n" +
		"Subject: Hello\n" +
		"X-Gmail-Labels: Inbox, Important")

	rec, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, uint64(len(raw)), rec.Message.Size)
	assert.Equal(t, "alice@x.com", rec.Message.FromAddress)
	assert.Equal(t, int64(1646130600), rec.Message.Date)
	assert.Equal(t, "Tue, 01 Mar 2022 10:30:00 +0000", rec.Message.RawDate)
	assert.Equal(t, "Hello", rec.Message.Subject)
	assert.Equal(t, []string{"Inbox", "Important"}, rec.Labels)
}

func TestNormalize_SizeCoversHeaderAndBody(t *testing.T) {
	raw := entry("From: a@x.com\nSubject: s")

	rec, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(len(raw)), rec.Message.Size)
}

func TestNormalize_SenderFallback(t *testing.T) {
	raw := entry("Sender: list-owner@y.org\nSubject: s")

	rec, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "list-owner@y.org", rec.Message.FromAddress)
}

func TestNormalize_FirstAddressOfListWins(t *testing.T) {
	raw := entry("From: Alice <alice@x.com>, Bob <bob@y.com>\nSubject: s")

	rec, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", rec.Message.FromAddress)
}

func TestNormalize_UnknownSenderSentinel(t *testing.T) {
	raw := entry("Subject: no sender here")

	rec, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, UnknownSenderSentinel, rec.Message.FromAddress)
}

func TestNormalize_UnparsableDateKeepsRawText(t *testing.T) {
	raw := entry("From: a@x.com\nDate: not a real date\nSubject: s")

	rec, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.Message.Date)
	assert.Equal(t, "not a real date", rec.Message.RawDate)
}

func TestNormalize_MissingDate(t *testing.T) {
	raw := entry("From: a@x.com\nSubject: s")

	rec, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.Message.Date)
	assert.Empty(t, rec.Message.RawDate)
}

func TestNormalize_NoSubjectSentinel(t *testing.T) {
	raw := entry("From: a@x.com")

	rec, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, NoSubjectSentinel, rec.Message.Subject)
}

func TestNormalize_NoLabelHeader(t *testing.T) {
	raw := entry("From: a@x.com\nSubject: s")

	rec, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{UnlabeledSentinel}, rec.Labels)
}

func TestNormalize_LabelsTrimmed(t *testing.T) {
	raw := entry("From: a@x.com\nX-Gmail-Labels:   Inbox ,  Archived  ,Receipts")

	rec, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Inbox", "Archived", "Receipts"}, rec.Labels)
}

func TestNormalize_DuplicateLabelsKept(t *testing.T) {
	// Dedup is the store's job at write time, not the normalizer's.
	raw := entry("From: a@x.com\nX-Gmail-Labels: Inbox, Inbox")

	rec, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Inbox", "Inbox"}, rec.Labels)
}

func TestNormalize_NoHeaderSection(t *testing.T) {
	raw := []byte("there are no headers here\n\njust text\n")

	_, err := Normalize(raw)
	assert.ErrorIs(t, err, ErrUnparsableEntry)
}
