package render

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/MegaDev007/farmheart-backend-sub000/internal/vitals/engine"
)

const notificationHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>{{.Title}}</title>
  <style>
    body {
      margin: 0;
      padding: 24px;
      font-family: "Helvetica Neue", Arial, sans-serif;
      color: #1f2937;
      background: #f9fafb;
    }
    .card {
      max-width: 560px;
      margin: 0 auto;
      background: #ffffff;
      border: 1px solid #e5e7eb;
      border-radius: 8px;
      overflow: hidden;
    }
    .banner {
      padding: 12px 20px;
      color: #ffffff;
      background: {{severityColor .Severity}};
      font-size: 12px;
      text-transform: uppercase;
      letter-spacing: 0.05em;
    }
    .body {
      padding: 20px;
    }
    .body h1 {
      margin: 0 0 12px;
      font-size: 18px;
    }
    .body p {
      margin: 0 0 16px;
      font-size: 14px;
      line-height: 1.5;
    }
    .footer {
      padding: 12px 20px;
      border-top: 1px solid #e5e7eb;
      font-size: 11px;
      color: #6b7280;
    }
  </style>
</head>
<body>
  <div class="card">
    <div class="banner">{{severityLabel .Severity}} &middot; Farmheart</div>
    <div class="body">
      <h1>{{.Title}}</h1>
      <p>{{.Message}}</p>
    </div>
    <div class="footer">
      Sent {{formatTime .SentAt}} &middot; manage notification settings in your farm dashboard.
    </div>
  </div>
</body>
</html>
`

// EmailInput is the deterministic input for email rendering.
type EmailInput struct {
	Title    string
	Message  string
	Severity engine.Severity
	SentAt   time.Time
}

// EmailRenderer produces the HTML body for email-eligible notifications.
type EmailRenderer interface {
	RenderHTML(input EmailInput) (string, error)
}

type htmlEmailRenderer struct {
	tpl *template.Template
}

func NewEmailRenderer() EmailRenderer {
	funcs := template.FuncMap{
		"severityColor": severityColor,
		"severityLabel": severityLabel,
		"formatTime":    formatTime,
	}
	return &htmlEmailRenderer{
		tpl: template.Must(template.New("notification").Funcs(funcs).Parse(notificationHTMLTemplate)),
	}
}

func (r *htmlEmailRenderer) RenderHTML(input EmailInput) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, input); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func severityColor(sev engine.Severity) template.CSS {
	switch sev {
	case engine.SeverityCritical:
		return "#b91c1c"
	case engine.SeverityHigh:
		return "#c2410c"
	case engine.SeverityMedium:
		return "#1d4ed8"
	default:
		return "#374151"
	}
}

func severityLabel(sev engine.Severity) string {
	label := strings.TrimSpace(string(sev))
	if label == "" {
		return "Notice"
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.UTC().Format("2006-01-02 15:04 UTC")
}
