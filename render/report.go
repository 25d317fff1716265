package render

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Report is a visual record of a scripted pan/zoom run.
type Report struct {
	Title     string
	Timestamp time.Time
	Steps     []Step
}

// Step is one captured frame of a run.
type Step struct {
	Label     string
	Transform string
	Filename  string       // relative to the report directory
	DataURL   template.URL // filled in by WriteReport
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { background: #101014; color: #e6e6f0; font-family: sans-serif; margin: 2em; }
figure { margin: 0 0 2em 0; }
figcaption { margin-top: .5em; }
code { color: #ff87d7; }
img { border: 1px solid #333; max-width: 100%; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Timestamp.Format "2006-01-02 15:04:05"}} &middot; {{len .Steps}} frames</p>
{{range .Steps}}<figure>
<img src="{{.DataURL}}" alt="{{.Label}}">
<figcaption>{{.Label}} <code>{{.Transform}}</code></figcaption>
</figure>
{{end}}</body>
</html>
`))

// WriteReport writes r to dir/index.html, embedding each step's frame.
func WriteReport(dir string, r Report) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	steps := make([]Step, len(r.Steps))
	for i, s := range r.Steps {
		url, err := dataURL(filepath.Join(dir, s.Filename))
		if err != nil {
			return err
		}
		s.DataURL = url
		steps[i] = s
	}
	r.Steps = steps

	file, err := os.Create(filepath.Join(dir, "index.html"))
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer file.Close()

	if err := reportTemplate.Execute(file, r); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// dataURL reads an image file and encodes it as a base64 data URL.
func dataURL(path string) (template.URL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read frame: %w", err)
	}

	mime := "image/png"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		mime = "image/jpeg"
	case ".gif":
		mime = "image/gif"
	}

	return template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)), nil
}
