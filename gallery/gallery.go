package gallery

import "slices"

// Sink receives a snapshot after every gallery mutation
type Sink interface {
	Submit(Snapshot)
}

// Gallery is the in-memory, authoritative list of wallpapers. It is not safe
// for concurrent use; the UI loop owns it.
type Gallery struct {
	images   []Image
	selected string
	sink     Sink
}

// NewGallery restores a gallery from a loaded snapshot. sink may be nil.
func NewGallery(snap Snapshot, sink Sink) *Gallery {
	return &Gallery{
		images:   slices.Clone(snap.Images),
		selected: snap.Selected,
		sink:     sink,
	}
}

// Images returns the stored images in upload order
func (g *Gallery) Images() []Image {
	return slices.Clone(g.images)
}

func (g *Gallery) Len() int {
	return len(g.images)
}

func (g *Gallery) index(id string) int {
	return slices.IndexFunc(g.images, func(img Image) bool { return img.ID == id })
}

// Get looks up an image by id
func (g *Gallery) Get(id string) (Image, bool) {
	i := g.index(id)
	if i < 0 {
		return Image{}, false
	}
	return g.images[i], true
}

// Add stores img and selects it
func (g *Gallery) Add(img Image) {
	g.images = append(g.images, img)
	g.selected = img.ID
	g.changed()
}

// Delete removes an image. Deleting the selected image clears the selection.
func (g *Gallery) Delete(id string) bool {
	i := g.index(id)
	if i < 0 {
		return false
	}
	g.images = slices.Delete(slices.Clone(g.images), i, i+1)
	if g.selected == id {
		g.selected = ""
	}
	g.changed()
	return true
}

// Select points the wallpaper at id; "" selects none. Unknown ids are
// rejected.
func (g *Gallery) Select(id string) bool {
	if id != "" && g.index(id) < 0 {
		return false
	}
	if id == g.selected {
		return true
	}
	g.selected = id
	g.changed()
	return true
}

// Next cycles the selection through none, then every image in order.
func (g *Gallery) Next() (Image, bool) {
	if len(g.images) == 0 {
		g.Select("")
		return Image{}, false
	}
	i := g.index(g.selected)
	if i+1 >= len(g.images) {
		g.Select("")
		return Image{}, false
	}
	g.Select(g.images[i+1].ID)
	return g.images[i+1], true
}

// SelectedID is the persisted pointer, which may name a deleted image
func (g *Gallery) SelectedID() string {
	return g.selected
}

// Selected returns the selected image; false means use the default palette.
func (g *Gallery) Selected() (Image, bool) {
	if g.selected == "" {
		return Image{}, false
	}
	return g.Get(g.selected)
}

// Snapshot is the state to persist
func (g *Gallery) Snapshot() Snapshot {
	return Snapshot{
		Version:  SnapshotVersion,
		Images:   slices.Clone(g.images),
		Selected: g.selected,
	}
}

func (g *Gallery) changed() {
	if g.sink != nil {
		g.sink.Submit(g.Snapshot())
	}
}
