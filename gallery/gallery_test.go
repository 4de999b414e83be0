package gallery

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	snaps []Snapshot
}

func (r *recordingSink) Submit(s Snapshot) { r.snaps = append(r.snaps, s) }

func img(id string) Image {
	return Image{ID: id, Data: DataURI("image/png", []byte(id)), CreatedAt: time.Unix(0, 0).UTC()}
}

func TestGalleryAddSelects(t *testing.T) {
	sink := &recordingSink{}
	g := NewGallery(Snapshot{}, sink)

	g.Add(img("a"))
	g.Add(img("b"))

	sel, ok := g.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", sel.ID)
	assert.Equal(t, 2, g.Len())
	require.Len(t, sink.snaps, 2)
	assert.Equal(t, "b", sink.snaps[1].Selected)
	assert.Len(t, sink.snaps[1].Images, 2)
}

func TestGalleryDeleteSelectedClearsSelection(t *testing.T) {
	g := NewGallery(Snapshot{Images: []Image{img("a"), img("b")}, Selected: "a"}, nil)

	assert.True(t, g.Delete("a"))
	_, ok := g.Selected()
	assert.False(t, ok)
	assert.Equal(t, "", g.SelectedID())
	assert.False(t, g.Delete("a"))
	assert.Equal(t, 1, g.Len())
}

func TestGalleryDeleteOtherKeepsSelection(t *testing.T) {
	g := NewGallery(Snapshot{Images: []Image{img("a"), img("b")}, Selected: "b"}, nil)
	images := g.Images()

	require.True(t, g.Delete("a"))
	sel, ok := g.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", sel.ID)
	assert.Len(t, images, 2, "earlier Images() result must not change")
}

func TestGalleryDanglingSelection(t *testing.T) {
	g := NewGallery(Snapshot{Images: []Image{img("a")}, Selected: "gone"}, nil)

	_, ok := g.Selected()
	assert.False(t, ok)
	assert.Equal(t, "gone", g.SelectedID())
}

func TestGallerySelect(t *testing.T) {
	sink := &recordingSink{}
	g := NewGallery(Snapshot{Images: []Image{img("a"), img("b")}}, sink)

	assert.False(t, g.Select("zzz"))
	assert.True(t, g.Select("a"))
	assert.True(t, g.Select("a"))
	assert.True(t, g.Select(""))
	assert.Len(t, sink.snaps, 2, "repeat selection does not persist again")
}

func TestGalleryNextCycles(t *testing.T) {
	g := NewGallery(Snapshot{Images: []Image{img("a"), img("b")}}, nil)

	var seen []string
	for i := 0; i < 4; i++ {
		sel, ok := g.Next()
		if ok {
			seen = append(seen, sel.ID)
		} else {
			seen = append(seen, "")
		}
	}
	assert.Equal(t, []string{"a", "b", "", "a"}, seen)

	empty := NewGallery(Snapshot{}, nil)
	_, ok := empty.Next()
	assert.False(t, ok)
}

type slowStore struct {
	mu    sync.Mutex
	saved []Snapshot
}

func (s *slowStore) Load(context.Context) (Snapshot, error) { return Snapshot{}, nil }
func (s *slowStore) Close() error                           { return nil }

func (s *slowStore) Save(_ context.Context, snap Snapshot) error {
	time.Sleep(time.Millisecond)
	s.mu.Lock()
	s.saved = append(s.saved, snap)
	s.mu.Unlock()
	return nil
}

func TestPersisterWritesInOrder(t *testing.T) {
	store := &slowStore{}
	p := NewPersister(store)
	g := NewGallery(Snapshot{}, p)

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		g.Add(img(id))
	}
	p.Close()

	require.NotEmpty(t, store.saved)
	last := store.saved[len(store.saved)-1]
	assert.Equal(t, "e", last.Selected)
	assert.Len(t, last.Images, 5)

	// writes may be coalesced but never reordered
	for i := 1; i < len(store.saved); i++ {
		assert.Greater(t, len(store.saved[i].Images), len(store.saved[i-1].Images))
	}
	assert.NoError(t, p.Err())
	assert.Equal(t, len(store.saved), p.Saves())
}

func TestPersisterFlushesToDisk(t *testing.T) {
	store, err := Open("json", t.TempDir())
	require.NoError(t, err)
	p := NewPersister(store)

	g := NewGallery(Snapshot{}, p)
	g.Add(img("a"))
	g.Add(img("b"))
	g.Delete("b")
	p.Close()
	p.Close()

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Images, 1)
	assert.Equal(t, "a", snap.Images[0].ID)
	assert.Equal(t, "", snap.Selected)
}
