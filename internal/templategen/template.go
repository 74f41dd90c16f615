package templategen

import "html/template"

var listingTmpl = template.Must(template.New("listing").Parse(listingDocument))

// listingDocument is the full export document. Styles are inlined and no
// scripts beyond the JSON-LD block are emitted, so the result renders inside
// eBay's listing-description sandbox.
const listingDocument = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<meta name="description" content="{{.MetaDescription}}">
<meta name="keywords" content="{{.MetaKeywords}}">
<script type="application/ld+json">{{.StructuredData}}</script>
<style>
  body { margin: 0; font-family: Arial, Helvetica, sans-serif; color: #222; background: #fff; }
  .listing { max-width: 960px; margin: 0 auto; padding: 16px; }
  .store-header { display: flex; align-items: center; gap: 12px; padding-bottom: 12px; border-bottom: 2px solid #eee; }
  .store-header img { height: 48px; }
  .store-header h2 { margin: 0; font-size: 20px; }
  .listing-title { font-size: 26px; margin: 16px 0 8px; }
  .image-grid { display: flex; flex-wrap: wrap; gap: 8px; margin: 16px 0; }
  .grid-item { flex: 0 0 auto; width: 180px; }
  .grid-item img { width: 100%; border-radius: 4px; }
  .grid-item.main-image { width: 100%; }
  .grid-item.main-image img { border: 2px solid #0064d2; }
  .grid-item .caption { font-size: 12px; color: #666; }
  .description { line-height: 1.6; margin: 16px 0; }
  .highlights { display: flex; flex-wrap: wrap; gap: 8px; margin: 16px 0; }
  .highlight { background: #f2f7ff; border: 1px solid #cfe2ff; border-radius: 16px; padding: 6px 14px; font-size: 14px; }
  .info-tiles { display: flex; flex-wrap: wrap; gap: 12px; margin: 24px 0; }
  .tile { flex: 1 1 200px; background: #fafafa; border: 1px solid #eee; border-radius: 6px; padding: 12px; }
  .tile h4 { margin: 0 0 6px; font-size: 14px; }
  .tile p { margin: 0; font-size: 13px; color: #555; }
  .things-to-know { background: #fffbe6; border: 1px solid #ffe58f; border-radius: 6px; padding: 12px 16px; margin: 16px 0; }
  .things-to-know h3 { margin: 0 0 8px; font-size: 16px; }
  .list-time { background: #f6ffed; border: 1px solid #b7eb8f; border-radius: 6px; padding: 12px 16px; margin: 16px 0; font-size: 14px; }
</style>
</head>
<body>
<div class="listing">
  <div class="store-header">
    {{if .StoreLogo}}<img src="{{.StoreLogo}}" alt="{{.StoreName}}">{{end}}
    <h2>{{.StoreName}}</h2>
  </div>
  <h1 class="listing-title">{{.Title}}</h1>
  <div class="image-grid">
    {{range .Images}}<div class="grid-item{{if .Cover}} main-image{{end}}">
      <img src="{{.URL}}" alt="{{if .Name}}{{.Name}}{{else}}{{$.Title}}{{end}}">
      {{if .Name}}<div class="caption">{{.Name}}</div>{{end}}
    </div>
    {{end}}
  </div>
  <div class="description">{{.Description}}</div>
  {{if .Highlights}}<div class="highlights">
    {{range .Highlights}}<span class="highlight">{{.}}</span>
    {{end}}
  </div>{{end}}
  <div class="info-tiles">
    <div class="tile">
      <h4>Fast Shipping</h4>
      <p>Ships in {{.ShippingText}}</p>
    </div>
    <div class="tile">
      <h4>Condition</h4>
      <p>Exactly as described, carefully inspected before dispatch</p>
    </div>
    <div class="tile">
      <h4>Authenticity</h4>
      <p>Sourced directly, 100% genuine items only</p>
    </div>
    <div class="tile">
      <h4>Returns</h4>
      <p>30-day hassle-free returns accepted</p>
    </div>
  </div>
  <div class="things-to-know">
    <h3>Things to Know</h3>
    <p>{{.ShippingSentence}}</p>
    <p>Message us through eBay with any questions; we reply within one business day.</p>
  </div>
  {{if .SuggestedListTime}}<div class="list-time">Recommended listing time: {{.SuggestedListTime}}</div>{{end}}
</div>
</body>
</html>
`
