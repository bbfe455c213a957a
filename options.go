package pdfview

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// config holds internal configuration shared by [View] and [ChromeViewer].
type config struct {
	// delivery
	platform        Platform
	useGoogleReader bool
	cacheDir        string
	styles          map[string]string
	scrollEnabled   bool
	devMode         bool

	// collaborators
	fs         FileSystem
	httpClient *http.Client
	logger     *zap.Logger
	viewer     Viewer

	// callbacks
	onLoadStart func()
	onLoad      func(*LoadEvent)
	onError     func(error)

	// embedded browser
	timeout      time.Duration
	chromePath   string
	noSandbox    bool
	headless     string
	autoDownload bool
}

func defaultConfig() config {
	return config{
		platform:      Android,
		scrollEnabled: true,
		fs:            osFS{},
		logger:        zap.NewNop(),
		timeout:       30 * time.Second,
		headless:      "new",
	}
}

// Option configures a [View] or a [ChromeViewer].
type Option func(*config)

// WithPlatform sets the host platform the delivery strategy is resolved for.
// Defaults to [Android].
func WithPlatform(p Platform) Option {
	return func(c *config) {
		c.platform = p
	}
}

// WithGoogleReader forces delivery through the Google Docs viewer regardless
// of platform. The source must carry a remote URI.
func WithGoogleReader() Option {
	return func(c *config) {
		c.useGoogleReader = true
	}
}

// WithCacheDir sets the directory staged artifacts are written to. Defaults
// to a "pdfview" directory under the user cache dir. Instances sharing a
// cache directory race on the same fixed filenames; give each instance its
// own directory when that matters.
func WithCacheDir(dir string) Option {
	return func(c *config) {
		c.cacheDir = dir
	}
}

// WithStyles sets CSS property overrides applied to the embedded PDF frame
// in generated viewer pages, e.g. {"backgroundColor": "#222"}.
func WithStyles(styles map[string]string) Option {
	return func(c *config) {
		c.styles = styles
	}
}

// WithScrollDisabled turns off scrolling in generated viewer pages.
func WithScrollDisabled() Option {
	return func(c *config) {
		c.scrollEnabled = false
	}
}

// WithDevelopmentMode forces the bundled viewer script to be re-copied on
// every staging, skipping the checksum freshness check.
func WithDevelopmentMode() Option {
	return func(c *config) {
		c.devMode = true
	}
}

// WithFileSystem substitutes the file-system collaborator used for staging.
func WithFileSystem(fs FileSystem) Option {
	return func(c *config) {
		c.fs = fs
	}
}

// WithHTTPClient sets the client used to fetch remote documents.
// Defaults to [http.DefaultClient].
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.httpClient = client
	}
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLoadStartHandler registers a callback invoked when a render attempt
// begins, after the source has been validated.
func WithLoadStartHandler(fn func()) Option {
	return func(c *config) {
		c.onLoadStart = fn
	}
}

// WithLoadHandler registers a callback invoked when the attached viewer
// reports a completed load.
func WithLoadHandler(fn func(*LoadEvent)) Option {
	return func(c *config) {
		c.onLoad = fn
	}
}

// WithErrorHandler registers a callback receiving validation, staging, fetch,
// and teardown errors. The default handler logs them through the configured
// logger.
func WithErrorHandler(fn func(error)) Option {
	return func(c *config) {
		c.onError = fn
	}
}

// WithTimeout sets the maximum duration for a single display operation in
// the embedded browser. Defaults to 30 seconds. A zero or negative value
// disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithChromePath sets the path to the Chrome or Chromium executable.
// By default the library searches standard locations automatically.
func WithChromePath(path string) Option {
	return func(c *config) {
		c.chromePath = path
	}
}

// WithNoSandbox disables the Chrome sandbox. This is required when
// running as root, for example inside Docker containers.
func WithNoSandbox() Option {
	return func(c *config) {
		c.noSandbox = true
	}
}

// WithAutoDownload downloads a compatible Chromium binary when no local
// Chrome installation is found. The binary is cached between runs.
func WithAutoDownload() Option {
	return func(c *config) {
		c.autoDownload = true
	}
}
