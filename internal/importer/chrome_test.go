package importer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nikbrunner/bmdash/internal/importer"
)

const chromeJSON = `{
   "checksum": "0f6c5b2a",
   "roots": {
      "bookmark_bar": {
         "children": [ {
            "children": [ {
               "id": "4",
               "name": "",
               "type": "url",
               "url": "https://intranet.example/page"
            }, {
               "children": [ ],
               "id": "5",
               "name": "life",
               "type": "folder"
            } ],
            "id": "3",
            "name": "Main",
            "type": "folder"
         }, {
            "id": "6",
            "name": "Loose",
            "type": "url",
            "url": "https://loose.example"
         } ],
         "id": "1",
         "name": "Bookmarks bar",
         "type": "folder"
      },
      "other": {
         "children": [ ],
         "id": "2",
         "name": "Other bookmarks",
         "type": "folder"
      },
      "synced": {
         "children": [ {
            "id": "8",
            "name": "odd",
            "type": "separator"
         } ],
         "id": "7",
         "name": "Mobile bookmarks",
         "type": "folder"
      }
   },
   "version": 1
}`

func TestParseChrome(t *testing.T) {
	root, err := importer.ParseChrome(strings.NewReader(chromeJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if root.ID != importer.RootID {
		t.Errorf("expected root id %q, got %q", importer.RootID, root.ID)
	}

	var ids []string
	for _, c := range root.Children {
		ids = append(ids, c.ID)
	}
	if strings.Join(ids, ",") != "1,2,7" {
		t.Fatalf("expected roots 1,2,7 in order, got %v", ids)
	}

	bar := root.Children[0]
	if bar.Title != "Bookmarks bar" || len(bar.Children) != 2 {
		t.Fatalf("unexpected bookmark bar: %+v", bar)
	}

	main := bar.Children[0]
	if !main.IsFolder() || main.ID != "3" {
		t.Fatalf("expected folder 3, got %+v", main)
	}
	if leaf := main.Children[0]; !leaf.IsBookmark() || leaf.Title != "" || leaf.URL != "https://intranet.example/page" {
		t.Errorf("unexpected leaf: %+v", leaf)
	}
	if life := main.Children[1]; !life.IsFolder() || len(life.Children) != 0 {
		t.Errorf("empty folder should stay a folder: %+v", life)
	}

	if !root.Children[1].IsFolder() {
		t.Error("empty root should be a folder")
	}
	// Separators are dropped.
	if n := len(root.Children[2].Children); n != 0 {
		t.Errorf("expected unknown node types to be dropped, got %d children", n)
	}
}

func TestParseChrome_MissingRoots(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"empty roots", `{"roots": {}}`},
		{"non-folder roots", `{"roots": {"bookmark_bar": {"id": "1", "type": "weird"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importer.ParseChrome(strings.NewReader(tt.body))
			if !errors.Is(err, importer.ErrNoRoots) {
				t.Errorf("expected ErrNoRoots, got %v", err)
			}
		})
	}
}

func TestParseChrome_Malformed(t *testing.T) {
	_, err := importer.ParseChrome(strings.NewReader(`{"roots": [`))
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if !strings.Contains(err.Error(), "decode chrome bookmarks") {
		t.Errorf("expected wrapped decode error, got %v", err)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		data    string
		want    string
		wantErr bool
	}{
		{"/x/bookmarks.html", "", importer.FormatHTML, false},
		{"/x/export.HTM", "{", importer.FormatHTML, false},
		{"/x/Bookmarks", `  {"roots":{}}`, importer.FormatChrome, false},
		{"/x/Bookmarks.json", `{}`, importer.FormatChrome, false},
		{"/x/export", "\n<!DOCTYPE NETSCAPE-Bookmark-file-1>", importer.FormatHTML, false},
		{"/x/Bookmarks", "", "", true},
		{"/x/notes.txt", "plain text", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := importer.DetectFormat(tt.path, []byte(tt.data))
			if tt.wantErr {
				if !errors.Is(err, importer.ErrUnknownFormat) {
					t.Errorf("expected ErrUnknownFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFormat(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestFileProvider(t *testing.T) {
	dir := t.TempDir()
	chromePath := filepath.Join(dir, "Bookmarks")
	htmlPath := filepath.Join(dir, "export.html")
	if err := os.WriteFile(chromePath, []byte(chromeJSON), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(htmlPath, []byte(nestedHTML), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		provider  importer.FileProvider
		wantFirst string
	}{
		{"auto chrome", importer.FileProvider{Path: chromePath, Format: importer.FormatAuto}, "Bookmarks bar"},
		{"explicit chrome", importer.FileProvider{Path: chromePath, Format: importer.FormatChrome}, "Bookmarks bar"},
		{"auto html", importer.FileProvider{Path: htmlPath}, "Development"},
		{"explicit html", importer.FileProvider{Path: htmlPath, Format: importer.FormatHTML}, "Development"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := tt.provider.Tree(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := root.Children[0].Title; got != tt.wantFirst {
				t.Errorf("first root child = %q, want %q", got, tt.wantFirst)
			}
		})
	}
}

func TestFileProvider_Errors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Bookmarks")
	if err := os.WriteFile(path, []byte(chromeJSON), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("missing file", func(t *testing.T) {
		p := importer.FileProvider{Path: filepath.Join(dir, "absent")}
		_, err := p.Tree(context.Background())
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected not-exist error, got %v", err)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		p := importer.FileProvider{Path: path, Format: "opml"}
		_, err := p.Tree(context.Background())
		if !errors.Is(err, importer.ErrUnknownFormat) {
			t.Errorf("expected ErrUnknownFormat, got %v", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := importer.FileProvider{Path: path}.Tree(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}
