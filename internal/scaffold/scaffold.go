// Package scaffold writes the development index.html that loads the bundle.
package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
)

// IndexFile is the scaffold's file name inside the output directory.
const IndexFile = "index.html"

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1.0, minimum-scale=1.0, maximum-scale=1.0, user-scalable=no" />
    <title>{{.Title}}</title>
    <script src="./{{.Script}}"></script>
</head>
<body style="margin: 0; padding: 0;">
</body>
</html>`))

// RenderIndex renders the page with the given title, loading script.
func RenderIndex(title, script string) ([]byte, error) {
	var buf bytes.Buffer
	err := indexTemplate.Execute(&buf, struct {
		Title  string
		Script string
	}{title, script})
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", IndexFile, err)
	}
	return buf.Bytes(), nil
}

// EnsureIndexHTML writes outputDir/index.html unless it already exists,
// creating outputDir as needed. It reports whether the file was written.
func EnsureIndexHTML(outputDir, title, script string) (bool, error) {
	path := filepath.Join(outputDir, IndexFile)

	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	content, err := RenderIndex(title, script)
	if err != nil {
		return false, err
	}

	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return false, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil { //nolint:gosec // G306: served to browsers
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}
