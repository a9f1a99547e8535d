package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/tncutoffs/internal/records"
	"github.com/a3tai/tncutoffs/internal/registry"
)

// memStore is an in-memory Store with controllable timestamps.
type memStore struct {
	blobs  map[string][]byte
	mtimes map[string]time.Time
	writes int
}

func newMemStore() *memStore {
	return &memStore{blobs: map[string][]byte{}, mtimes: map[string]time.Time{}}
}

func (s *memStore) Exists(key string) bool {
	_, ok := s.blobs[key]
	return ok
}

func (s *memStore) Mtime(key string) (time.Time, error) {
	return s.mtimes[key], nil
}

func (s *memStore) Read(key string) ([]byte, error) {
	return s.blobs[key], nil
}

func (s *memStore) Write(key string, data []byte) error {
	s.blobs[key] = data
	s.mtimes[key] = time.Now()
	s.writes++
	return nil
}

// stubParser returns canned raw rows and counts invocations.
type stubParser struct {
	rows  []records.Record
	calls int
}

func (p *stubParser) Parse(_, round string, _ registry.ParseStyle, quota string) ([]records.Record, error) {
	p.calls++
	out := make([]records.Record, len(p.rows))
	copy(out, p.rows)
	for i := range out {
		out[i].Round = round
		out[i].Quota = quota
	}
	return out, nil
}

func tempPDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "govt round 2.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))
	return path
}

func TestKey_SanitizesFilename(t *testing.T) {
	assert.Equal(t, "7p5_reservation_round_1.v4.json", Key("/data/7p5 reservation round 1.pdf"))
	assert.Equal(t, "govt_round_2.v4.json", Key(`C:\results\govt round 2.pdf`))
	assert.Equal(t, "plain.v4.json", Key("plain.pdf"))
}

func TestLoadOrParse_MissParsesAndPersists(t *testing.T) {
	path := tempPDF(t)
	store := newMemStore()
	parser := &stubParser{rows: []records.Record{
		{Rank: 1, TotalMarks: "550.0", AllottedTo: "MBBS (Government)\nStanley Medical College", Year: records.Year},
	}}
	loader := NewLoader(store, parser)

	rows, err := loader.LoadOrParse(path, "Round2", registry.StyleDefault, records.QuotaGovt)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// The persisted result is post-processed.
	assert.Equal(t, 1, parser.calls)
	assert.Equal(t, "MBBS", rows[0].Course)
	assert.Equal(t, "Government", rows[0].CollegeType)
	assert.Equal(t, "Stanley Medical College", rows[0].College)
	assert.Empty(t, rows[0].AllottedTo)
	assert.True(t, store.Exists(Key(path)))
}

func TestLoadOrParse_FreshHitSkipsParsing(t *testing.T) {
	path := tempPDF(t)
	store := newMemStore()
	parser := &stubParser{rows: []records.Record{
		{Rank: 1, TotalMarks: "550.0", AllottedTo: "MBBS\nCollege A", Year: records.Year},
	}}
	loader := NewLoader(store, parser)

	first, err := loader.LoadOrParse(path, "Round2", registry.StyleDefault, records.QuotaGovt)
	require.NoError(t, err)

	second, err := loader.LoadOrParse(path, "Round2", registry.StyleDefault, records.QuotaGovt)
	require.NoError(t, err)

	assert.Equal(t, 1, parser.calls)
	assert.Equal(t, first, second)
}

func TestLoadOrParse_StaleBlobReparses(t *testing.T) {
	path := tempPDF(t)
	store := newMemStore()
	parser := &stubParser{rows: []records.Record{
		{Rank: 1, TotalMarks: "550.0", AllottedTo: "MBBS\nCollege A", Year: records.Year},
	}}
	loader := NewLoader(store, parser)

	_, err := loader.LoadOrParse(path, "Round2", registry.StyleDefault, records.QuotaGovt)
	require.NoError(t, err)

	// Backdate the blob behind the source document.
	store.mtimes[Key(path)] = time.Now().Add(-time.Hour)

	_, err = loader.LoadOrParse(path, "Round2", registry.StyleDefault, records.QuotaGovt)
	require.NoError(t, err)
	assert.Equal(t, 2, parser.calls)
	assert.Equal(t, 2, store.writes)
}

func TestLoadOrParse_CorruptBlobSelfHeals(t *testing.T) {
	path := tempPDF(t)
	store := newMemStore()
	parser := &stubParser{rows: []records.Record{
		{Rank: 1, TotalMarks: "550.0", AllottedTo: "MBBS\nCollege A", Year: records.Year},
	}}
	loader := NewLoader(store, parser)

	store.blobs[Key(path)] = []byte("{not json")
	store.mtimes[Key(path)] = time.Now().Add(time.Hour)

	rows, err := loader.LoadOrParse(path, "Round2", registry.StyleDefault, records.QuotaGovt)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, parser.calls)

	// The bad blob was overwritten with a valid one.
	var persisted []records.Record
	require.NoError(t, json.Unmarshal(store.blobs[Key(path)], &persisted))
	assert.Equal(t, rows, persisted)
}

func TestLoadOrParse_MissingSourceIsFatal(t *testing.T) {
	loader := NewLoader(newMemStore(), &stubParser{})

	_, err := loader.LoadOrParse("/nowhere/missing.pdf", "Round2", registry.StyleDefault, records.QuotaGovt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.pdf")
}

func TestFSStore_RoundTrip(t *testing.T) {
	store := NewFSStore(filepath.Join(t.TempDir(), "cache"))

	assert.False(t, store.Exists("a.v4.json"))
	require.NoError(t, store.Write("a.v4.json", []byte(`[{"rank":1}]`)))
	assert.True(t, store.Exists("a.v4.json"))

	data, err := store.Read("a.v4.json")
	require.NoError(t, err)
	assert.Equal(t, `[{"rank":1}]`, string(data))

	mt, err := store.Mtime("a.v4.json")
	require.NoError(t, err)
	assert.False(t, mt.IsZero())
}

func TestFSStore_WriteIdempotentDirectoryCreation(t *testing.T) {
	store := NewFSStore(filepath.Join(t.TempDir(), "cache"))

	require.NoError(t, store.Write("a.v4.json", []byte("[]")))
	require.NoError(t, store.Write("b.v4.json", []byte("[]")))
}
