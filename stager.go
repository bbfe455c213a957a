package pdfview

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Artifact names inside the cache directory. They are deterministic so a
// re-stage overwrites the previous copy; concurrent instances sharing one
// cache directory will race on them. Use distinct cache directories for
// isolation.
const (
	viewerHTMLName   = "viewer.html"
	viewerScriptName = "viewer.js"
	stagedPDFName    = "document.pdf"
)

// viewerShell is the generated HTML document fed to web-based strategies.
// It carries two JSON-serialized configuration globals, the PDF payload as a
// data attribute, and a reference to the bundled viewer script.
const viewerShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<script>
window.VIEWER_STYLES = {{.Styles}};
window.VIEWER_SCROLL_ENABLED = {{.Scroll}};
</script>
</head>
<body>
<div id="viewer" data-pdf="{{.Data}}"></div>
<script src="{{.Script}}"></script>
</body>
</html>
`

var shellTmpl = template.Must(template.New("viewer").Parse(viewerShell))

type shellData struct {
	Styles template.JS
	Scroll template.JS
	Data   string
	Script string
}

// renderShell produces the viewer page embedding the given data URI.
func renderShell(dataURI string, styles map[string]string, scrollEnabled bool) ([]byte, error) {
	if styles == nil {
		styles = map[string]string{}
	}
	stylesJSON, err := json.Marshal(styles)
	if err != nil {
		return nil, fmt.Errorf("pdfview: encoding styles: %w", err)
	}
	scrollJSON, err := json.Marshal(scrollEnabled)
	if err != nil {
		return nil, fmt.Errorf("pdfview: encoding scroll flag: %w", err)
	}

	var buf bytes.Buffer
	err = shellTmpl.Execute(&buf, shellData{
		Styles: template.JS(stylesJSON),
		Scroll: template.JS(scrollJSON),
		Data:   dataURI,
		Script: viewerScriptName,
	})
	if err != nil {
		return nil, fmt.Errorf("pdfview: rendering viewer shell: %w", err)
	}
	return buf.Bytes(), nil
}

// stager prepares and removes the temporary files a strategy needs inside a
// single cache directory.
type stager struct {
	fs       FileSystem
	cacheDir string
	devMode  bool
	logger   *zap.Logger
}

func (s *stager) htmlPath() string   { return filepath.Join(s.cacheDir, viewerHTMLName) }
func (s *stager) scriptPath() string { return filepath.Join(s.cacheDir, viewerScriptName) }
func (s *stager) pdfPath() string    { return filepath.Join(s.cacheDir, stagedPDFName) }

// stageHTML writes the generated viewer page embedding dataURI and ensures
// the bundled script is present and current.
func (s *stager) stageHTML(dataURI string, styles map[string]string, scrollEnabled bool) error {
	page, err := renderShell(dataURI, styles, scrollEnabled)
	if err != nil {
		return err
	}
	if err := s.fs.Write(s.htmlPath(), page); err != nil {
		return fmt.Errorf("pdfview: writing viewer page: %w", err)
	}
	return s.ensureScript()
}

// ensureScript copies the embedded viewer script into the cache directory
// when it is absent, checksum-mismatched, or when development mode forces a
// refresh.
func (s *stager) ensureScript() error {
	path := s.scriptPath()
	if !s.devMode {
		sum, err := s.fs.Checksum(path)
		if err == nil && sum == viewerScriptChecksum {
			return nil
		}
	}
	s.logger.Debug("staging bundled viewer script", zap.String("path", path))
	if err := s.fs.Write(path, viewerScript); err != nil {
		return fmt.Errorf("pdfview: staging viewer script: %w", err)
	}
	return nil
}

// stagePDF strips the data-URI prefix from payload, decodes the base64
// content, and writes the raw bytes to the staged PDF path.
func (s *stager) stagePDF(payload string) error {
	raw := strings.TrimPrefix(payload, pdfDataPrefix)
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return fmt.Errorf("pdfview: decoding base64 payload: %w", err)
	}
	if err := s.fs.Write(s.pdfPath(), data); err != nil {
		return fmt.Errorf("pdfview: writing staged pdf: %w", err)
	}
	return nil
}

// cleanup removes the artifacts the given strategy staged. Strategies that
// never write files leave the cache directory untouched.
func (s *stager) cleanup(strategy Strategy) error {
	var paths []string
	switch strategy {
	case DirectBase64, URLToBase64:
		paths = []string{s.htmlPath(), s.scriptPath()}
	case Base64ToLocalPDF:
		paths = []string{s.pdfPath()}
	default:
		return nil
	}
	for _, p := range paths {
		if err := s.fs.Remove(p); err != nil {
			return fmt.Errorf("pdfview: removing %s: %w", p, err)
		}
	}
	return nil
}
