package output

import (
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/maxvaer/urlcheck/internal/result"
)

// HTMLWriter renders a self-contained HTML report.
type HTMLWriter struct {
	w      io.Writer
	closer io.Closer
}

// NewHTMLWriter creates an HTML report writer.
func NewHTMLWriter(outputFile string) (*HTMLWriter, error) {
	w, closer, err := openOutput(outputFile)
	if err != nil {
		return nil, err
	}
	return &HTMLWriter{w: w, closer: closer}, nil
}

type htmlGroup struct {
	Size int64
	URLs []string
}

type htmlStatus struct {
	Code   int
	Name   string
	Class  string
	Groups []htmlGroup
}

type htmlError struct {
	URL    string
	Detail string
}

type htmlData struct {
	Total     int
	Valid     int
	Errors    int
	TimeTaken string
	Timestamp string
	Statuses  []htmlStatus
	Failures  []htmlError
}

func (h *HTMLWriter) Write(set *result.Set) error {
	data := htmlData{
		Total:     set.Stats.Total,
		Valid:     set.Stats.Valid,
		Errors:    set.Stats.Errored,
		TimeTaken: set.Stats.Duration().Round(10 * time.Millisecond).String(),
		Timestamp: set.Stats.End.Format("2006-01-02 15:04:05"),
	}
	for _, code := range set.StatusCodes() {
		st := htmlStatus{Code: code, Name: statusName(code), Class: statusClass(code)}
		for _, size := range set.Sizes(code) {
			st.Groups = append(st.Groups, htmlGroup{Size: size, URLs: set.Buckets[code][size]})
		}
		data.Statuses = append(data.Statuses, st)
	}
	for _, f := range set.Failures {
		data.Failures = append(data.Failures, htmlError{URL: f.URL, Detail: f.Err.Error()})
	}
	return reportTemplate.Execute(h.w, data)
}

func (h *HTMLWriter) Close() error {
	if h.closer != nil {
		return h.closer.Close()
	}
	return nil
}

func statusName(code int) string {
	if name := http.StatusText(code); name != "" {
		return name
	}
	return "Unknown"
}

func statusClass(code int) string {
	switch {
	case code == 200:
		return "status-200"
	case code >= 300 && code < 400:
		return "status-3xx"
	case code == 403:
		return "status-403"
	default:
		return "status-other"
	}
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>URL Checker Report</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Arial, sans-serif;
    background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
    min-height: 100vh;
    padding: 20px;
}
.container { max-width: 1200px; margin: 0 auto; }
.header, .stats, .status-card, .error-section {
    background: white;
    border-radius: 12px;
    padding: 24px;
    margin-bottom: 20px;
    box-shadow: 0 10px 30px rgba(0,0,0,0.2);
}
.header h1 { color: #333; margin-bottom: 8px; }
.header p { color: #666; font-size: 14px; }
.stats { display: flex; gap: 32px; flex-wrap: wrap; }
.stat-item { font-size: 14px; }
.stat-label { color: #666; display: block; }
.stat-value { font-weight: 600; color: #333; font-size: 20px; }
.status-header { display: flex; align-items: center; gap: 12px; cursor: pointer; }
.status-badge {
    padding: 6px 16px;
    border-radius: 20px;
    font-weight: 600;
    font-size: 14px;
}
.status-200 { background: #d4edda; color: #155724; }
.status-3xx { background: #fff3cd; color: #856404; }
.status-403 { background: #f8d7da; color: #721c24; }
.status-other { background: #d1ecf1; color: #0c5460; }
.size-header {
    background: #f8f9fa;
    padding: 12px 16px;
    border-radius: 8px;
    margin: 16px 0 8px;
    font-weight: 600;
    color: #495057;
}
.url-table { width: 100%; border-collapse: collapse; }
.url-table td { padding: 10px 12px; border-top: 1px solid #dee2e6; font-size: 14px; }
.url-link { color: #667eea; text-decoration: none; word-break: break-all; }
.url-link:hover { text-decoration: underline; }
.error-section h2 { color: #dc3545; margin-bottom: 12px; }
.error-item {
    padding: 12px;
    background: #f8f9fa;
    border-left: 4px solid #dc3545;
    margin-bottom: 8px;
    border-radius: 4px;
    font-size: 14px;
}
.collapsed { display: none; }
</style>
</head>
<body>
<div class="container">
    <div class="header">
        <h1>URL Checker Report</h1>
        <p>Bug Bounty Reconnaissance Tool</p>
    </div>

    <div class="stats">
        <div class="stat-item"><span class="stat-label">Total URLs</span><span class="stat-value">{{.Total}}</span></div>
        <div class="stat-item"><span class="stat-label">Valid Responses</span><span class="stat-value">{{.Valid}}</span></div>
        <div class="stat-item"><span class="stat-label">Errors</span><span class="stat-value">{{.Errors}}</span></div>
        <div class="stat-item"><span class="stat-label">Time Taken</span><span class="stat-value">{{.TimeTaken}}</span></div>
        <div class="stat-item"><span class="stat-label">Last Checked</span><span class="stat-value">{{.Timestamp}}</span></div>
    </div>

    {{if .Failures}}
    <div class="error-section">
        <h2>Errors ({{len .Failures}})</h2>
        {{range .Failures}}
        <div class="error-item"><strong>{{.URL}}</strong><br>{{.Detail}}</div>
        {{end}}
    </div>
    {{end}}

    {{range .Statuses}}
    <div class="status-card">
        <div class="status-header" onclick="toggle(this)">
            <span class="status-badge {{.Class}}">{{.Code}}</span>
            <h2>{{.Name}}</h2>
        </div>
        <div class="status-content">
            {{range .Groups}}
            <div class="size-group">
                <div class="size-header">Response Size: {{.Size}} bytes ({{len .URLs}} URLs)</div>
                <table class="url-table">
                    <tbody>
                        {{range .URLs}}
                        <tr><td><a href="{{.}}" target="_blank" class="url-link">{{.}}</a></td></tr>
                        {{end}}
                    </tbody>
                </table>
            </div>
            {{end}}
        </div>
    </div>
    {{end}}
</div>

<script>
function toggle(header) {
    header.parentElement.querySelector('.status-content').classList.toggle('collapsed');
}
</script>
</body>
</html>
`))
