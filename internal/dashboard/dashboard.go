// Package dashboard turns a bookmark tree into the tab/panel/block/group/card
// structure shown to the user. Build is a pure transform: it reads collapse
// flags but never writes them, and it never touches the terminal.
package dashboard

import (
	"github.com/nikbrunner/bmdash/internal/model"
)

// PanelPrefix prefixes a top-level folder id to form its panel id.
const PanelPrefix = "panel-"

// CollapseReader answers collapse lookups during Build.
type CollapseReader interface {
	IsCollapsed(id string) bool
}

// Collapser persists a collapse flag after a toggle.
type Collapser interface {
	SetCollapsed(id string, collapsed bool)
}

// Dashboard is the rendered UI tree.
type Dashboard struct {
	Tabs   []Tab
	Panels []Panel
	Active string // id of the active tab, empty when there are no tabs
}

// Tab is one entry of the tab bar, one per top-level folder.
type Tab struct {
	ID     string
	Title  string
	Active bool
}

// Panel holds the content of one tab.
type Panel struct {
	ID     string
	TabID  string
	Active bool
	Blocks []Block
}

// Block is a section of a panel. A titled block mirrors a second-level
// folder; the untitled block holds the top-level folder's own bookmarks and
// has no header, so it can never collapse.
type Block struct {
	ID        string
	Title     string
	Collapsed bool
	Items     []Element
}

// Titled reports whether the block has a clickable header.
func (b Block) Titled() bool {
	return b.ID != ""
}

// ElementKind tags an Element.
type ElementKind int

const (
	KindGroup ElementKind = iota
	KindCard
)

// Element is either a Group or a Card.
type Element struct {
	Kind  ElementKind
	Group *Group
	Card  *Card
}

// Group is a collapsible container for a folder nested below a block.
type Group struct {
	ID        string
	Title     string
	Collapsed bool
	Items     []Element
}

// Card is one bookmark.
type Card struct {
	ID      string
	URL     string
	Title   string
	IconURL string
}

// Options tune card construction.
type Options struct {
	FaviconEndpoint string
	FaviconSize     int
}

// noState answers false for every id.
type noState struct{}

func (noState) IsCollapsed(string) bool { return false }

// Build converts the host tree into a Dashboard. Root children that are not
// folders are skipped. The first tab is active.
func Build(root *model.Node, state CollapseReader, opts Options) *Dashboard {
	if state == nil {
		state = noState{}
	}

	d := &Dashboard{}
	if root == nil {
		return d
	}

	b := builder{state: state, opts: opts}
	for _, folder := range root.Folders() {
		d.Tabs = append(d.Tabs, Tab{ID: folder.ID, Title: folder.Title})
		d.Panels = append(d.Panels, Panel{
			ID:     PanelPrefix + folder.ID,
			TabID:  folder.ID,
			Blocks: b.blocks(folder),
		})
	}

	if len(d.Tabs) > 0 {
		d.Select(d.Tabs[0].ID)
	}
	return d
}

type builder struct {
	state CollapseReader
	opts  Options
}

// blocks lays out a top-level folder: one titled block per sub-folder in
// order, then a single untitled block with the direct bookmarks.
func (b builder) blocks(folder *model.Node) []Block {
	var blocks []Block
	for _, sub := range folder.Folders() {
		blocks = append(blocks, Block{
			ID:        sub.ID,
			Title:     sub.Title,
			Collapsed: b.state.IsCollapsed(sub.ID),
			Items:     b.elements(sub),
		})
	}

	var direct []Element
	for _, bm := range folder.Bookmarks() {
		direct = append(direct, b.card(bm))
	}
	if len(direct) > 0 {
		blocks = append(blocks, Block{Items: direct})
	}
	return blocks
}

// elements renders a folder's children: folders become groups, bookmarks
// become cards, interleaved in host order.
func (b builder) elements(folder *model.Node) []Element {
	var items []Element
	for _, child := range folder.Children {
		switch {
		case child.IsFolder():
			items = append(items, Element{Kind: KindGroup, Group: &Group{
				ID:        child.ID,
				Title:     child.Title,
				Collapsed: b.state.IsCollapsed(child.ID),
				Items:     b.elements(child),
			}})
		case child.IsBookmark():
			items = append(items, b.card(child))
		}
	}
	return items
}

func (b builder) card(node *model.Node) Element {
	c := NewCard(node, b.opts)
	return Element{Kind: KindCard, Card: &c}
}

// ActiveTab returns the index of the active tab, or -1.
func (d *Dashboard) ActiveTab() int {
	for i, t := range d.Tabs {
		if t.ID == d.Active {
			return i
		}
	}
	return -1
}

// ActivePanel returns the active panel, or nil when there are no tabs.
func (d *Dashboard) ActivePanel() *Panel {
	for i := range d.Panels {
		if d.Panels[i].TabID == d.Active {
			return &d.Panels[i]
		}
	}
	return nil
}

// Panel returns the panel for a tab id, or nil.
func (d *Dashboard) Panel(tabID string) *Panel {
	for i := range d.Panels {
		if d.Panels[i].TabID == tabID {
			return &d.Panels[i]
		}
	}
	return nil
}

// Select makes tabID the single active tab. Unknown ids leave the current
// selection in place and return false. Collapse flags are never touched.
func (d *Dashboard) Select(tabID string) bool {
	found := false
	for _, t := range d.Tabs {
		if t.ID == tabID {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	d.Active = tabID
	for i := range d.Tabs {
		d.Tabs[i].Active = d.Tabs[i].ID == tabID
	}
	for i := range d.Panels {
		d.Panels[i].Active = d.Panels[i].TabID == tabID
	}
	return true
}

// SelectOffset moves the selection by delta tabs, wrapping around.
func (d *Dashboard) SelectOffset(delta int) bool {
	n := len(d.Tabs)
	if n == 0 {
		return false
	}
	idx := d.ActiveTab()
	if idx < 0 {
		idx = 0
	}
	next := ((idx+delta)%n + n) % n
	return d.Select(d.Tabs[next].ID)
}

// Toggle flips the block or group with the given id in every panel and
// persists the new value through c. It returns the new value and whether
// the id was found.
func (d *Dashboard) Toggle(id string, c Collapser) (bool, bool) {
	if id == "" {
		return false, false
	}
	for i := range d.Panels {
		p := &d.Panels[i]
		for j := range p.Blocks {
			blk := &p.Blocks[j]
			if blk.ID == id {
				blk.Collapsed = !blk.Collapsed
				if c != nil {
					c.SetCollapsed(id, blk.Collapsed)
				}
				return blk.Collapsed, true
			}
			if g := findGroup(blk.Items, id); g != nil {
				g.Collapsed = !g.Collapsed
				if c != nil {
					c.SetCollapsed(id, g.Collapsed)
				}
				return g.Collapsed, true
			}
		}
	}
	return false, false
}

// IsCollapsed reports the visual collapse flag of a block or group.
func (d *Dashboard) IsCollapsed(id string) (bool, bool) {
	for i := range d.Panels {
		for _, blk := range d.Panels[i].Blocks {
			if blk.ID == id && id != "" {
				return blk.Collapsed, true
			}
			if g := findGroup(blk.Items, id); g != nil {
				return g.Collapsed, true
			}
		}
	}
	return false, false
}

func findGroup(items []Element, id string) *Group {
	for _, it := range items {
		if it.Kind != KindGroup {
			continue
		}
		if it.Group.ID == id {
			return it.Group
		}
		if g := findGroup(it.Group.Items, id); g != nil {
			return g
		}
	}
	return nil
}

// ContainerIDs lists every collapsible id of a panel in display order.
func (p Panel) ContainerIDs() []string {
	var ids []string
	var walk func(items []Element)
	walk = func(items []Element) {
		for _, it := range items {
			if it.Kind == KindGroup {
				ids = append(ids, it.Group.ID)
				walk(it.Group.Items)
			}
		}
	}
	for _, blk := range p.Blocks {
		if blk.Titled() {
			ids = append(ids, blk.ID)
		}
		walk(blk.Items)
	}
	return ids
}

// CollapseFlags returns the visual collapse flag of every container of a panel.
func (p Panel) CollapseFlags() map[string]bool {
	flags := map[string]bool{}
	var walk func(items []Element)
	walk = func(items []Element) {
		for _, it := range items {
			if it.Kind == KindGroup {
				flags[it.Group.ID] = it.Group.Collapsed
				walk(it.Group.Items)
			}
		}
	}
	for _, blk := range p.Blocks {
		if blk.Titled() {
			flags[blk.ID] = blk.Collapsed
		}
		walk(blk.Items)
	}
	return flags
}

// CardCount returns the number of cards in a panel, collapsed or not.
func (p Panel) CardCount() int {
	var count func(items []Element) int
	count = func(items []Element) int {
		n := 0
		for _, it := range items {
			switch it.Kind {
			case KindCard:
				n++
			case KindGroup:
				n += count(it.Group.Items)
			}
		}
		return n
	}
	total := 0
	for _, blk := range p.Blocks {
		total += count(blk.Items)
	}
	return total
}
