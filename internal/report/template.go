package report

// PageTemplate is the HTML page wrapping the rendered gauge.
// It is embedded as a Go constant — no external file dependencies.
const PageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
  :root {
    --bg: #ffffff;
    --text: #2c3e50;
    --muted: #6b7280;
    --border: #bdc3c7;
  }
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: Arial, -apple-system, 'Segoe UI', sans-serif;
    color: var(--text);
    background: var(--bg);
    line-height: 1.6;
    max-width: 640px;
    margin: 0 auto;
    padding: 24px;
  }
  .gauge-wrap { text-align: center; }
  .tier-badge {
    display: inline-block;
    color: white;
    padding: 2px 14px;
    border-radius: 4px;
    font-weight: 700;
    font-size: 0.85rem;
    text-transform: uppercase;
    margin-bottom: 12px;
  }
  .breakdown {
    background: rgba(255, 255, 255, 0.9);
    border: 2px solid var(--border);
    border-radius: 8px;
    padding: 12px 18px;
    margin: 16px auto 0;
    max-width: 360px;
    text-align: center;
    font-size: 0.95rem;
    color: #34495e;
    white-space: pre-line;
  }
  .footer {
    margin-top: 24px;
    text-align: center;
    color: var(--muted);
    font-size: 0.8rem;
  }
</style>
</head>
<body>
  <div class="gauge-wrap">
    <span class="tier-badge" style="background: {{.TierColor}}">{{.Tier}} tier</span>
    {{.GaugeSVG}}
    {{if .Annotation}}<div class="breakdown">{{.Annotation}}</div>{{end}}
  </div>
  <div class="footer">Generated by sentigauge at {{.GeneratedAt}}</div>
</body>
</html>
`
