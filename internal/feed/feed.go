// Package feed holds the earthling feed: a fixed set of community posts
// with a per-session like toggle. The login gate lives with the caller;
// the board only knows how to flip likes.
package feed

// Item is one community post.
type Item struct {
	ID       int
	Author   string
	ImageRef string
	Likes    int
	Liked    bool
}

// Board is the ordered feed, supplied once at startup.
type Board struct {
	items []Item
}

// NewBoard wraps the given items. Order is preserved as rendered.
func NewBoard(items []Item) *Board {
	return &Board{items: append([]Item(nil), items...)}
}

// Toggle flips the viewer's like on the referenced item, moving its count
// by exactly one in the matching direction. Unknown ids are ignored.
func (b *Board) Toggle(id int) {
	for i := range b.items {
		if b.items[i].ID != id {
			continue
		}
		if b.items[i].Liked {
			b.items[i].Liked = false
			b.items[i].Likes--
		} else {
			b.items[i].Liked = true
			b.items[i].Likes++
		}
		return
	}
}

// Items returns a copy of the feed in display order.
func (b *Board) Items() []Item {
	return append([]Item(nil), b.items...)
}

// Item returns the post with the given id.
func (b *Board) Item(id int) (Item, bool) {
	for _, it := range b.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Len returns the number of posts.
func (b *Board) Len() int {
	return len(b.items)
}

// DefaultItems returns the feed the session starts with.
func DefaultItems() []Item {
	return []Item{
		{ID: 1, Author: "SkyLover", ImageRef: "sunset", Likes: 123},
		{ID: 2, Author: "StarGazer", ImageRef: "night-sky", Likes: 45},
		{ID: 3, Author: "CloudWatcher", ImageRef: "clouds", Likes: 88},
		{ID: 4, Author: "AstroKid", ImageRef: "aurora", Likes: 210},
		{ID: 5, Author: "DawnPatrol", ImageRef: "sunrise", Likes: 76},
		{ID: 6, Author: "BlueSkyDreamer", ImageRef: "blue-sky", Likes: 152},
	}
}
