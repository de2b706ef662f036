package model

// Node is one entry of the host bookmark tree.
// A folder has non-nil Children and no URL; a bookmark has a URL and nil Children.
type Node struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	URL      string  `json:"url,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// NewFolder creates a folder node. The children slice is never nil so an
// empty folder is still a folder.
func NewFolder(id, title string, children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{ID: id, Title: title, Children: children}
}

// NewBookmark creates a leaf bookmark node.
func NewBookmark(id, title, url string) *Node {
	return &Node{ID: id, Title: title, URL: url}
}

// IsFolder returns true if the node carries children.
func (n *Node) IsFolder() bool {
	return n != nil && n.Children != nil
}

// IsBookmark returns true if the node is a leaf with a URL.
func (n *Node) IsBookmark() bool {
	return n != nil && n.Children == nil && n.URL != ""
}

// Folders returns the direct children that are folders, in order.
func (n *Node) Folders() []*Node {
	var result []*Node
	for _, c := range n.Children {
		if c.IsFolder() {
			result = append(result, c)
		}
	}
	return result
}

// Bookmarks returns the direct children that are bookmarks, in order.
func (n *Node) Bookmarks() []*Node {
	var result []*Node
	for _, c := range n.Children {
		if c.IsBookmark() {
			result = append(result, c)
		}
	}
	return result
}

// Count returns the number of folders and bookmarks below n (n excluded).
func (n *Node) Count() (folders, bookmarks int) {
	for _, c := range n.Children {
		switch {
		case c.IsFolder():
			folders++
			f, b := c.Count()
			folders += f
			bookmarks += b
		case c.IsBookmark():
			bookmarks++
		}
	}
	return folders, bookmarks
}

// CollapseStates maps folder IDs to their collapsed flag.
// A missing key means expanded.
type CollapseStates map[string]bool

// Clone returns an independent copy.
func (c CollapseStates) Clone() CollapseStates {
	out := make(CollapseStates, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
