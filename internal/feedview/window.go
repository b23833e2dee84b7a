// Package feedview keeps a bounded neighborhood of feed items fully
// instantiated around the current scroll position. Every item outside the
// window renders as an inert placeholder of identical height, so scroll-snap
// geometry is preserved without mounting media players for off-screen items.
//
// The controller consumes an externally computed active index (scroll or
// visibility signal); it does not measure anything itself.
package feedview

import (
	"sync"

	"scrollforcause/platform/internal/feed"
	"scrollforcause/platform/internal/feedclient"
)

const (
	// DefaultBuffer is the symmetric mount window radius around the
	// active item.
	DefaultBuffer = 2

	// prefetchDistance triggers the next page load when the active item
	// is this close to the end of the loaded list.
	prefetchDistance = 2
)

// Playback controls media resources for feed items. Activate must reset the
// playback position to the beginning before starting; Deactivate pauses.
type Playback interface {
	Activate(entry feed.Entry)
	Deactivate(entry feed.Entry)
}

// Preloader hints that a media resource will be needed soon. Hinting is
// best-effort; implementations must not block or fail loudly.
type Preloader interface {
	Hint(url string)
}

// Pager is the feed session the renderer draws items from.
// *feedclient.Session satisfies it.
type Pager interface {
	View() feedclient.View
	FetchNextPage() error
}

// Controller owns the active window. Exactly one item is active at a time;
// activation and deactivation are strictly ordered so two items are never
// playing simultaneously, even across rapid scroll.
type Controller struct {
	pager     Pager
	playback  Playback
	preloader Preloader
	buffer    int

	mu          sync.Mutex
	activeIndex int
	activeSet   bool
	failed      map[int]bool
	hinted      map[string]bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithBuffer sets the mount window radius.
func WithBuffer(n int) Option {
	return func(c *Controller) { c.buffer = n }
}

// WithPreloader enables look-ahead media hinting.
func WithPreloader(p Preloader) Option {
	return func(c *Controller) { c.preloader = p }
}

// NewController creates a windowed renderer over the given feed session.
func NewController(pager Pager, playback Playback, opts ...Option) *Controller {
	c := &Controller{
		pager:    pager,
		playback: playback,
		buffer:   DefaultBuffer,
		failed:   make(map[int]bool),
		hinted:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ActiveIndex returns the currently active item index, or -1 when nothing
// has been activated yet.
func (c *Controller) ActiveIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.activeSet {
		return -1
	}
	return c.activeIndex
}

// Window returns the inclusive index range of fully mounted items, clamped
// to the loaded list.
func (c *Controller) Window() (lo, hi int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.window(len(c.pager.View().Items))
}

func (c *Controller) window(itemCount int) (lo, hi int) {
	if !c.activeSet || itemCount == 0 {
		return 0, -1
	}
	lo = c.activeIndex - c.buffer
	if lo < 0 {
		lo = 0
	}
	hi = c.activeIndex + c.buffer
	if hi > itemCount-1 {
		hi = itemCount - 1
	}
	return lo, hi
}

// IsMounted reports whether the item at index renders fully, as opposed to
// an inert placeholder.
func (c *Controller) IsMounted(index int) bool {
	lo, hi := c.Window()
	return index >= lo && index <= hi
}

// SetActiveIndex applies an external scroll/visibility signal. The previous
// active item is paused before the new one starts, the next item's primary
// media is hinted, and a prefetch is triggered when the viewport nears the
// end of loaded items.
func (c *Controller) SetActiveIndex(index int) {
	view := c.pager.View()
	items := view.Items
	if len(items) == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > len(items)-1 {
		index = len(items) - 1
	}

	c.mu.Lock()
	sameItem := c.activeSet && c.activeIndex == index
	prevSet, prevIndex := c.activeSet, c.activeIndex
	c.activeIndex = index
	c.activeSet = true
	failed := c.failed[index]
	c.mu.Unlock()

	if !sameItem {
		// Pause before play so no two items are ever active together.
		if prevSet && prevIndex < len(items) {
			c.playback.Deactivate(items[prevIndex])
		}
		if !failed {
			c.playback.Activate(items[index])
		}
		c.hintNext(items, index)
	}

	c.maybePrefetch(view, index)
}

// hintNext asks the preloader for the primary media of the item after the
// active one. Each URL is hinted at most once per session.
func (c *Controller) hintNext(items []feed.Entry, index int) {
	if c.preloader == nil || index+1 >= len(items) {
		return
	}
	next := items[index+1]
	if len(next.Media) == 0 {
		return
	}
	url := next.Media[0].URL

	c.mu.Lock()
	already := c.hinted[url]
	c.hinted[url] = true
	c.mu.Unlock()

	if !already {
		c.preloader.Hint(url)
	}
}

func (c *Controller) maybePrefetch(view feedclient.View, index int) {
	if index >= len(view.Items)-prefetchDistance && view.HasNextPage && !view.IsFetchingNextPage {
		// The session dedupes concurrent calls, so a redundant trigger
		// from a fast scroll is harmless.
		c.pager.FetchNextPage()
	}
}

// MediaFailed degrades the item at index to its static fallback (poster or
// thumbnail). The surrounding list is untouched; if the item is currently
// active its playback is stopped.
func (c *Controller) MediaFailed(index int) {
	view := c.pager.View()

	c.mu.Lock()
	c.failed[index] = true
	active := c.activeSet && c.activeIndex == index
	c.mu.Unlock()

	if active && index < len(view.Items) {
		c.playback.Deactivate(view.Items[index])
	}
}

// RetryMedia clears the fallback state for the item at index; if it is the
// active item, playback restarts from the beginning.
func (c *Controller) RetryMedia(index int) {
	view := c.pager.View()

	c.mu.Lock()
	delete(c.failed, index)
	active := c.activeSet && c.activeIndex == index
	c.mu.Unlock()

	if active && index < len(view.Items) {
		c.playback.Activate(view.Items[index])
	}
}

// IsFallback reports whether the item at index is showing its static
// fallback instead of live media.
func (c *Controller) IsFallback(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failed[index]
}
