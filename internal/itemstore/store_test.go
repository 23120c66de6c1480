package itemstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatarubot/tataru/internal/domain"
)

// fakeDirectory is a canned remote item directory recording how often
// it was consulted.
type fakeDirectory struct {
	byName map[string]*domain.Item
	byID   map[int]*domain.Item
	err    error

	searchCalls int
	fetchCalls  int
}

func (d *fakeDirectory) SearchByName(ctx context.Context, name string) (*domain.Item, error) {
	d.searchCalls++
	if d.err != nil {
		return nil, d.err
	}
	return d.byName[strings.ToLower(name)], nil
}

func (d *fakeDirectory) FetchByID(ctx context.Context, id int) (*domain.Item, error) {
	d.fetchCalls++
	if d.err != nil {
		return nil, d.err
	}
	return d.byID[id], nil
}

func newTestStore(t *testing.T, directory *fakeDirectory) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "items.csv")
	if directory == nil {
		directory = &fakeDirectory{}
	}
	s, err := New(path, directory)
	require.NoError(t, err)
	return s, path
}

func fileLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestNewCreatesFileWithHeader(t *testing.T) {
	_, path := newTestStore(t, nil)

	lines := fileLines(t, path)
	require.Len(t, lines, 1)
	assert.Equal(t, "item_name,item_id,emoji,category,icon_url", lines[0])
}

func TestUpsertAppendsNewItem(t *testing.T) {
	s, path := newTestStore(t, nil)

	item := domain.Item{ID: 10, Name: "Dark Matter", Emoji: "🛠️", Category: "Crafting Material", IconURL: "https://example.com/10.png"}
	require.NoError(t, s.Upsert(item))

	lines := fileLines(t, path)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Dark Matter")
	assert.Equal(t, 1, s.Len())
}

func TestUpsertUnchangedIsNoop(t *testing.T) {
	s, path := newTestStore(t, nil)

	item := domain.Item{ID: 10, Name: "Dark Matter", Emoji: "🛠️"}
	require.NoError(t, s.Upsert(item))

	before, err := os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, s.Upsert(item))

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before.Size(), after.Size())
	assert.Equal(t, before.ModTime(), after.ModTime())
}

func TestUpsertChangedRewritesInOrder(t *testing.T) {
	s, path := newTestStore(t, nil)

	require.NoError(t, s.Upsert(domain.Item{ID: 10, Name: "Dark Matter", Emoji: "🛠️"}))
	require.NoError(t, s.Upsert(domain.Item{ID: 20, Name: "Iron Ore", Emoji: "⛏️"}))

	// Change the first item; it must keep its position, not move last.
	require.NoError(t, s.Upsert(domain.Item{ID: 10, Name: "Dark Matter", Emoji: "💎"}))

	lines := fileLines(t, path)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "Dark Matter")
	assert.Contains(t, lines[1], "💎")
	assert.Contains(t, lines[2], "Iron Ore")
}

func TestReloadAfterRestart(t *testing.T) {
	directory := &fakeDirectory{}
	path := filepath.Join(t.TempDir(), "items.csv")

	s, err := New(path, directory)
	require.NoError(t, err)
	require.NoError(t, s.Upsert(domain.Item{ID: 10, Name: "Dark Matter", Emoji: "🛠️", Category: "Crafting Material"}))
	require.NoError(t, s.Upsert(domain.Item{ID: 20, Name: "Iron Ore", Emoji: "⛏️"}))

	reopened, err := New(path, directory)
	require.NoError(t, err)
	assert.Equal(t, 2, reopened.Len())

	item, err := reopened.LookupByID(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "Dark Matter", item.Name)
	assert.Equal(t, "Crafting Material", item.Category)
	assert.Zero(t, directory.fetchCalls)
}

func TestLookupByIDEnrichesOnce(t *testing.T) {
	remote := domain.Item{ID: 33, Name: "Mythril Ingot", Emoji: "🧱", Category: "Metal"}
	directory := &fakeDirectory{byID: map[int]*domain.Item{33: &remote}}
	s, path := newTestStore(t, directory)

	item, err := s.LookupByID(context.Background(), 33)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "Mythril Ingot", item.Name)

	// Second lookup is served from the cache.
	item, err = s.LookupByID(context.Background(), 33)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 1, directory.fetchCalls)

	lines := fileLines(t, path)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Mythril Ingot")
}

func TestLookupByIDRemoteMiss(t *testing.T) {
	directory := &fakeDirectory{}
	s, _ := newTestStore(t, directory)

	item, err := s.LookupByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestLookupByIDRemoteFailureIsAbsorbed(t *testing.T) {
	directory := &fakeDirectory{err: errors.New("connection refused")}
	s, _ := newTestStore(t, directory)

	item, err := s.LookupByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestLookupByNameCaseInsensitive(t *testing.T) {
	directory := &fakeDirectory{}
	s, _ := newTestStore(t, directory)
	require.NoError(t, s.Upsert(domain.Item{ID: 10, Name: "Dark Matter"}))

	item, err := s.LookupByName(context.Background(), "dark matter")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 10, item.ID)
	assert.Zero(t, directory.searchCalls)
}

func TestLookupByNameFallsBackToDirectory(t *testing.T) {
	remote := domain.Item{ID: 55, Name: "Titanium Nugget", Emoji: "🧱", Category: "Metal"}
	directory := &fakeDirectory{byName: map[string]*domain.Item{"titanium nugget": &remote}}
	s, _ := newTestStore(t, directory)

	item, err := s.LookupByName(context.Background(), "Titanium Nugget")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 55, item.ID)
	assert.Equal(t, 1, directory.searchCalls)
	assert.Equal(t, 1, s.Len())
}

func TestCachedDoesNotTouchDirectory(t *testing.T) {
	directory := &fakeDirectory{byID: map[int]*domain.Item{7: {ID: 7, Name: "Copper Ore"}}}
	s, _ := newTestStore(t, directory)

	_, ok := s.Cached(7)
	assert.False(t, ok)
	assert.Zero(t, directory.fetchCalls)

	require.NoError(t, s.Upsert(domain.Item{ID: 7, Name: "Copper Ore"}))
	item, ok := s.Cached(7)
	require.True(t, ok)
	assert.Equal(t, "Copper Ore", item.Name)
}

func TestUpsertPersistFailurePropagates(t *testing.T) {
	s, path := newTestStore(t, nil)
	require.NoError(t, s.Upsert(domain.Item{ID: 10, Name: "Dark Matter", Emoji: "🛠️"}))

	// Replace the backing file with a directory so every write fails.
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0o755))

	// A changed field takes the rewrite branch.
	err := s.Upsert(domain.Item{ID: 10, Name: "Dark Matter", Emoji: "💎"})
	assert.ErrorIs(t, err, domain.ErrPersistFailed)

	// A new id takes the append branch.
	err = s.Upsert(domain.Item{ID: 20, Name: "Iron Ore"})
	assert.ErrorIs(t, err, domain.ErrPersistFailed)
}

func TestLookupPersistFailurePropagates(t *testing.T) {
	remote := domain.Item{ID: 33, Name: "Mythril Ingot"}
	directory := &fakeDirectory{byID: map[int]*domain.Item{33: &remote}}
	s, path := newTestStore(t, directory)

	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0o755))

	// Enrichment writes through the store; the persistence failure must
	// surface instead of being absorbed like a remote miss.
	_, err := s.LookupByID(context.Background(), 33)
	assert.ErrorIs(t, err, domain.ErrPersistFailed)
}

func TestUpsertPersistsCommasAndQuotes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.csv")
	s, err := New(path, &fakeDirectory{})
	require.NoError(t, err)

	item := domain.Item{ID: 10, Name: `Weathered "Spoon", Replica`, Category: "Crafting Material"}
	require.NoError(t, s.Upsert(item))

	reopened, err := New(path, &fakeDirectory{})
	require.NoError(t, err)
	got, ok := reopened.Cached(10)
	require.True(t, ok)
	assert.Equal(t, item.Name, got.Name)
}
