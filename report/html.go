package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
)

// htmlTemplate is a self-contained static rendering of the report structure.
var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"status": func(status *int) string {
		if status == nil {
			return "n/a"
		}
		return fmt.Sprintf("%d", *status)
	},
	"firstPage": func(pages []string) string {
		if len(pages) == 0 {
			return "N/A"
		}
		return pages[0]
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Link Report - {{.Domain}}</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; background: #f4f4f8; padding: 40px 20px; }
.container { max-width: 1200px; margin: 0 auto; background: white; border-radius: 12px; box-shadow: 0 4px 24px rgba(0,0,0,0.12); overflow: hidden; }
header { background: #3b3b58; color: white; padding: 40px; text-align: center; }
header h1 { font-size: 2.2em; margin-bottom: 10px; }
.content { padding: 40px; }
.meta { background: #f0f0f0; padding: 15px; border-radius: 5px; margin-bottom: 30px; }
.stats { display: grid; grid-template-columns: repeat(auto-fit, minmax(150px, 1fr)); gap: 15px; margin: 30px 0; }
.stat { background: #3b3b58; color: white; padding: 20px; border-radius: 8px; text-align: center; }
.stat-num { font-size: 2.2em; font-weight: bold; }
.stat-label { font-size: 0.9em; opacity: 0.9; margin-top: 5px; }
h2 { color: #333; margin-top: 40px; margin-bottom: 15px; border-bottom: 2px solid #3b3b58; padding-bottom: 10px; }
table { width: 100%; border-collapse: collapse; margin-top: 15px; }
th { background: #f0f0f0; padding: 12px; text-align: left; border-bottom: 2px solid #3b3b58; }
td { padding: 10px 12px; border-bottom: 1px solid #ddd; }
code { background: #f0f0f0; padding: 2px 6px; border-radius: 3px; font-family: monospace; }
.empty { text-align: center; color: #999; padding: 30px; font-style: italic; }
</style>
</head>
<body>
<div class="container">
<header>
<h1>Link Checker Report</h1>
<p>{{.SiteURL}}</p>
</header>
<div class="content">
<div class="meta">
<p><strong>Domain:</strong> {{.Domain}}</p>
<p><strong>Scanned:</strong> {{.Timestamp}}</p>
</div>
<div class="stats">
<div class="stat"><div class="stat-num">{{.Summary.TotalPagesScanned}}</div><div class="stat-label">Pages Scanned</div></div>
<div class="stat"><div class="stat-num">{{.Summary.TotalUniqueLinks}}</div><div class="stat-label">Total Links</div></div>
<div class="stat"><div class="stat-num">{{.Summary.ActiveLinks}}</div><div class="stat-label">Active Links</div></div>
<div class="stat"><div class="stat-num">{{.Summary.BrokenLinks}}</div><div class="stat-label">Broken (404)</div></div>
<div class="stat"><div class="stat-num">{{.Summary.InactiveLinks}}</div><div class="stat-label">Inactive</div></div>
<div class="stat"><div class="stat-num">{{.Summary.ErrorLinks}}</div><div class="stat-label">Errors</div></div>
</div>

<h2>Broken Links (404)</h2>
{{if .BrokenLinks}}<table><tr><th>URL</th><th>Status</th><th>Found On</th><th>Count</th></tr>
{{range .BrokenLinks}}<tr><td><code>{{.URL}}</code></td><td>{{status .Status}}</td><td>{{firstPage .FoundOnPages}}</td><td>{{.TotalOccurrences}}</td></tr>
{{end}}</table>{{else}}<p class="empty">No broken links found!</p>{{end}}

<h2>Inactive Links (4xx/5xx)</h2>
{{if .InactiveLinks}}<table><tr><th>URL</th><th>Status</th><th>Found On</th><th>Count</th></tr>
{{range .InactiveLinks}}<tr><td><code>{{.URL}}</code></td><td>{{status .Status}}</td><td>{{firstPage .FoundOnPages}}</td><td>{{.TotalOccurrences}}</td></tr>
{{end}}</table>{{else}}<p class="empty">No inactive links found!</p>{{end}}

<h2>Error Links</h2>
{{if .ErrorLinks}}<table><tr><th>URL</th><th>Error</th></tr>
{{range .ErrorLinks}}<tr><td><code>{{.URL}}</code></td><td>{{.Error}}</td></tr>
{{end}}</table>{{else}}<p class="empty">No errors found!</p>{{end}}

<h2>Sample Active Links</h2>
{{if .ActiveLinksSample}}<table><tr><th>URL</th><th>Count</th></tr>
{{range .ActiveLinksSample}}<tr><td><code>{{.URL}}</code></td><td>{{.TotalOccurrences}}</td></tr>
{{end}}</table>{{else}}<p class="empty">No active links in this report.</p>{{end}}
</div>
</div>
</body>
</html>
`))

// RenderHTML writes a static HTML rendering of the report to the writer.
func RenderHTML(w io.Writer, rep *Report) error {
	if err := htmlTemplate.Execute(w, rep); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	return nil
}

// SaveHTML persists the HTML rendering to path.
func SaveHTML(path string, rep *Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create html report file %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	return RenderHTML(f, rep)
}
