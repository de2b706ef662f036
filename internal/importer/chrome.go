package importer

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/nikbrunner/bmdash/internal/model"
)

// RootID is the id Chromium gives the invisible root node.
const RootID = "0"

type chromeFile struct {
	Roots struct {
		BookmarkBar *chromeNode `json:"bookmark_bar"`
		Other       *chromeNode `json:"other"`
		Synced      *chromeNode `json:"synced"`
	} `json:"roots"`
}

type chromeNode struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Type     string        `json:"type"`
	URL      string        `json:"url"`
	Children []*chromeNode `json:"children"`
}

// ParseChrome decodes a Chromium profile Bookmarks file. The synthesized root
// holds bookmark_bar, other and synced in that order; absent roots are skipped.
func ParseChrome(r io.Reader) (*model.Node, error) {
	var f chromeFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode chrome bookmarks: %w", err)
	}

	root := model.NewFolder(RootID, "")
	for _, cn := range []*chromeNode{f.Roots.BookmarkBar, f.Roots.Other, f.Roots.Synced} {
		if n := cn.convert(); n != nil {
			root.Children = append(root.Children, n)
		}
	}

	if len(root.Children) == 0 {
		return nil, ErrNoRoots
	}
	return root, nil
}

// convert returns nil for nodes that are neither folders nor bookmarks.
func (cn *chromeNode) convert() *model.Node {
	if cn == nil {
		return nil
	}
	switch cn.Type {
	case "folder":
		folder := model.NewFolder(cn.ID, cn.Name)
		for _, child := range cn.Children {
			if n := child.convert(); n != nil {
				folder.Children = append(folder.Children, n)
			}
		}
		return folder
	case "url":
		if cn.URL == "" {
			return nil
		}
		return model.NewBookmark(cn.ID, cn.Name, cn.URL)
	}
	return nil
}
