// Package exporter renders a dashboard as a standalone HTML page.
package exporter

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/bmdash/internal/dashboard"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/bookmarks-dashboard-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return exportPath(home, time.Now()), nil
}

func exportPath(home string, now time.Time) string {
	filename := fmt.Sprintf("bookmarks-dashboard-%s.html", now.Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename)
}

var page = template.Must(template.New("page").Funcs(template.FuncMap{
	"isGroup": func(e dashboard.Element) bool { return e.Kind == dashboard.KindGroup },
	"classes": classes,
	"when": func(cond bool, name string) string {
		if cond {
			return name
		}
		return ""
	},
}).Parse(pageTemplate))

// classes joins the non-empty class names.
func classes(names ...string) string {
	var out []string
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}

// ExportHTML renders the dashboard with its current active tab and collapse
// flags. The page carries a small script for tab switching and collapse
// toggles, which it remembers in localStorage.
func ExportHTML(d *dashboard.Dashboard) (string, error) {
	var b strings.Builder
	if err := page.Execute(&b, d); err != nil {
		return "", fmt.Errorf("render dashboard: %w", err)
	}
	return b.String(), nil
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Bookmarks</title>
<style>
body { font-family: system-ui, sans-serif; margin: 0; padding: 1rem 2rem; }
#tabs-container { display: flex; gap: .5rem; margin-bottom: 1rem; }
.tab-button { border: 0; background: none; padding: .4rem .8rem; cursor: pointer; }
.tab-button.active { border-bottom: 2px solid currentColor; font-weight: bold; }
.tab-panel { display: none; }
.tab-panel.active { display: block; }
.folder-title { cursor: pointer; font-size: 1rem; }
.collapsed > .top-level-folder-content, .collapsed > .folder-items { display: none; }
.top-level-folder-content, .folder-items { display: flex; flex-wrap: wrap; gap: .5rem; }
.folder-group { border: 1px dashed #999; border-radius: 6px; padding: .5rem; flex-basis: 100%; }
.card { display: flex; flex-direction: column; align-items: center; width: 6rem; text-decoration: none; color: inherit; }
.card-icon { width: 32px; height: 32px; }
.card-title { font-size: .8rem; text-align: center; overflow: hidden; text-overflow: ellipsis; white-space: nowrap; max-width: 100%; }
</style>
</head>
<body>
<div id="tabs-container">
{{- range .Tabs}}
<button class="{{classes "tab-button" (when .Active "active")}}" data-tab-id="{{.ID}}">{{.Title}}</button>
{{- end}}
</div>
<div id="tab-panels-container">
{{- range .Panels}}
<div class="{{classes "tab-panel" (when .Active "active")}}" id="{{.ID}}">
{{- range .Blocks}}
{{- if .Titled}}
<div class="{{classes "folder-block" (when .Collapsed "collapsed")}}" data-id="{{.ID}}">
<h2 class="folder-title">{{.Title}}</h2>
<div class="top-level-folder-content">{{template "items" .Items}}</div>
</div>
{{- else}}
<div class="folder-block">
<div class="top-level-folder-content">{{template "items" .Items}}</div>
</div>
{{- end}}
{{- end}}
</div>
{{- end}}
</div>
<script>
(function () {
  var key = 'collapsedStates';
  var states = {};
  try { states = JSON.parse(localStorage.getItem(key)) || {}; } catch (e) {}

  document.querySelectorAll('[data-id]').forEach(function (el) {
    if (Object.prototype.hasOwnProperty.call(states, el.dataset.id)) {
      el.classList.toggle('collapsed', !!states[el.dataset.id]);
    }
  });

  document.querySelectorAll('.folder-title').forEach(function (title) {
    title.addEventListener('click', function () {
      var el = title.parentElement;
      states[el.dataset.id] = el.classList.toggle('collapsed');
      try { localStorage.setItem(key, JSON.stringify(states)); } catch (e) {}
    });
  });

  document.getElementById('tabs-container').addEventListener('click', function (e) {
    if (!e.target.matches('.tab-button')) return;
    document.querySelectorAll('.tab-button, .tab-panel').forEach(function (el) {
      el.classList.remove('active');
    });
    e.target.classList.add('active');
    document.getElementById('panel-' + e.target.dataset.tabId).classList.add('active');
  });
})();
</script>
</body>
</html>
{{define "items"}}
{{- range .}}
{{- if isGroup .}}
<div class="{{classes "folder-group" (when .Group.Collapsed "collapsed")}}" data-id="{{.Group.ID}}">
<h2 class="folder-title">{{.Group.Title}}</h2>
<div class="folder-items">{{template "items" .Group.Items}}</div>
</div>
{{- else}}
<a class="card" href="{{.Card.URL}}" target="_blank" rel="noopener">
<img class="card-icon" src="{{.Card.IconURL}}" alt="">
<div class="card-title">{{.Card.Title}}</div>
</a>
{{- end}}
{{- end}}
{{- end}}`
