package model_test

import (
	"encoding/json"
	"testing"

	"github.com/nikbrunner/bmdash/internal/model"
	"gotest.tools/v3/assert"
)

func TestNode_Kinds(t *testing.T) {
	tests := []struct {
		name         string
		node         *model.Node
		wantFolder   bool
		wantBookmark bool
	}{
		{"empty folder", model.NewFolder("f1", "Work"), true, false},
		{"folder with children", model.NewFolder("f1", "Work", model.NewBookmark("b1", "Go", "https://go.dev")), true, false},
		{"bookmark", model.NewBookmark("b1", "Go", "https://go.dev"), false, true},
		{"neither", &model.Node{ID: "x", Title: "separator"}, false, false},
		{"nil", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.node.IsFolder(), tt.wantFolder)
			assert.Equal(t, tt.node.IsBookmark(), tt.wantBookmark)
		})
	}
}

func TestNode_FoldersAndBookmarksKeepOrder(t *testing.T) {
	root := model.NewFolder("root", "",
		model.NewBookmark("b1", "One", "https://one.example"),
		model.NewFolder("f1", "Alpha"),
		&model.Node{ID: "junk"},
		model.NewBookmark("b2", "Two", "https://two.example"),
		model.NewFolder("f2", "Beta"),
	)

	folders := root.Folders()
	assert.Equal(t, len(folders), 2)
	assert.Equal(t, folders[0].ID, "f1")
	assert.Equal(t, folders[1].ID, "f2")

	bookmarks := root.Bookmarks()
	assert.Equal(t, len(bookmarks), 2)
	assert.Equal(t, bookmarks[0].ID, "b1")
	assert.Equal(t, bookmarks[1].ID, "b2")
}

func TestNode_Count(t *testing.T) {
	root := model.NewFolder("root", "",
		model.NewFolder("f1", "Dev",
			model.NewFolder("f2", "Go",
				model.NewBookmark("b1", "Go", "https://go.dev"),
			),
			model.NewBookmark("b2", "GitHub", "https://github.com"),
		),
		model.NewBookmark("b3", "News", "https://news.ycombinator.com"),
	)

	folders, bookmarks := root.Count()
	assert.Equal(t, folders, 2)
	assert.Equal(t, bookmarks, 3)
}

func TestNode_JSONOmitsLeafChildren(t *testing.T) {
	data, err := json.Marshal(model.NewBookmark("b1", "Go", "https://go.dev"))
	assert.NilError(t, err)
	assert.Equal(t, string(data), `{"id":"b1","title":"Go","url":"https://go.dev"}`)
}

func TestCollapseStates_Clone(t *testing.T) {
	orig := model.CollapseStates{"f1": true}
	clone := orig.Clone()
	clone["f2"] = true
	clone["f1"] = false

	assert.Equal(t, len(orig), 1)
	assert.Equal(t, orig["f1"], true)
}

func TestStableID(t *testing.T) {
	a := model.StableID("Work", "0")
	b := model.StableID("Work", "0")
	c := model.StableID("Work", "1")
	d := model.StableID("Wor", "k0")

	assert.Equal(t, a, b)
	assert.Assert(t, a != c, "different index must give a different id")
	assert.Assert(t, a != d, "path separators must not collide")
	assert.Equal(t, len(a), 36)
}
