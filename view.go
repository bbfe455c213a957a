package pdfview

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// State tracks where a [View] is in its lifecycle.
type State int

const (
	// StateUninitialized means no strategy has been resolved yet.
	StateUninitialized State = iota
	// StateResolved means a strategy is chosen but staging has not
	// completed; the caller should show a loading placeholder.
	StateResolved
	// StateReady means staging succeeded and a locator is available.
	StateReady
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateResolved:
		return "resolved"
	case StateReady:
		return "ready"
	}
	return "uninitialized"
}

// View orchestrates delivery of one PDF source to an embedded viewer. It
// resolves a delivery strategy for the source, stages whatever temporary
// artifacts the strategy needs, and hands the resulting locator to the
// attached [Viewer].
//
// A View is safe for concurrent use; staging is serialized per instance, so
// a stale in-flight preparation cannot interleave with a newer one. Views
// sharing a cache directory still race on the staged filenames.
type View struct {
	cfg    config
	viewer Viewer

	mu       sync.Mutex
	src      Source
	strategy Strategy
	state    State
	locator  Locator
	primed   bool // iOS surface completed its initial blank load
}

// NewView creates a View for src. Attach an embedded viewer with
// [WithViewer]; without one, Mount only resolves and stages, and the caller
// reads the locator via [View.Locator].
func NewView(src Source, opts ...Option) (*View, error) {
	v := &View{cfg: defaultConfig(), src: src}
	for _, o := range opts {
		o(&v.cfg)
	}
	if v.cfg.cacheDir == "" {
		dir, err := defaultCacheDir()
		if err != nil {
			return nil, err
		}
		v.cfg.cacheDir = dir
	}
	v.viewer = v.cfg.viewer
	return v, nil
}

// WithViewer attaches the embedded viewer locators are handed to.
func WithViewer(viewer Viewer) Option {
	return func(c *config) {
		c.viewer = viewer
	}
}

// stager returns the artifact stager bound to this view's configuration.
func (v *View) stager() *stager {
	return &stager{
		fs:       v.cfg.fs,
		cacheDir: v.cfg.cacheDir,
		devMode:  v.cfg.devMode,
		logger:   v.cfg.logger,
	}
}

// State returns the current lifecycle state.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Strategy returns the delivery strategy resolved by the last Mount or
// Update, or [StrategyUnknown] before the first Mount.
func (v *View) Strategy() Strategy {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.strategy
}

// Locator returns the resolved viewer address. The second return value is
// false until the view reaches [StateReady].
func (v *View) Locator() (Locator, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.locator, v.state == StateReady
}

// Mount resolves the delivery strategy for the source, validates it, stages
// any artifacts the strategy needs, and hands the locator to the attached
// viewer. It corresponds to the component's first appearance.
func (v *View) Mount(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mount(ctx)
}

// Update replaces the view's source. When the URI or base64 payload differs
// from the current source, the ready state is dropped before anything else
// and the full mount pipeline reruns. An unchanged source is a no-op apart
// from picking up new headers.
func (v *View) Update(ctx context.Context, src Source) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.src.equal(src) {
		v.src = src
		return nil
	}
	if v.state == StateReady {
		v.state = StateResolved
	}
	v.src = src
	return v.mount(ctx)
}

// Unmount tears the view down, removing the artifacts the active strategy
// staged. Cleanup is best-effort: failures go to the error handler and never
// block the teardown.
func (v *View) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.stager().cleanup(v.strategy); err != nil {
		v.report(err)
	}
	v.state = StateUninitialized
	v.strategy = StrategyUnknown
	v.locator = Locator{}
	v.primed = false
}

// mount runs the resolve → validate → stage → display pipeline. Callers hold
// v.mu, which also serializes staging per instance.
func (v *View) mount(ctx context.Context) error {
	v.strategy = ResolveStrategy(v.cfg.platform, v.src, v.cfg.useGoogleReader)
	v.state = StateResolved
	v.cfg.logger.Debug("strategy resolved",
		zap.Stringer("platform", v.cfg.platform),
		zap.Stringer("strategy", v.strategy))

	// Invalid input blocks staging: the render attempt stops here and the
	// error is reported exactly once.
	if err := validateSource(v.strategy, v.src); err != nil {
		v.report(err)
		return err
	}

	if v.cfg.onLoadStart != nil {
		v.cfg.onLoadStart()
	}

	loc, err := v.prepare(ctx)
	if err != nil {
		v.report(err)
		return err
	}
	v.locator = loc
	v.state = StateReady

	if v.viewer == nil {
		return nil
	}
	ev, err := v.display(ctx, loc)
	if err != nil {
		v.report(err)
		return err
	}
	if v.cfg.onLoad != nil {
		v.cfg.onLoad(ev)
	}
	return nil
}

// prepare stages whatever the resolved strategy needs and builds the final
// locator. DirectURL and GoogleReader stage nothing.
func (v *View) prepare(ctx context.Context) (Locator, error) {
	st := v.stager()
	switch v.strategy {
	case URLToBase64:
		payload, err := fetchAsDataURI(ctx, v.cfg.httpClient, v.src)
		if err != nil {
			return Locator{}, err
		}
		if err := st.stageHTML(payload, v.cfg.styles, v.cfg.scrollEnabled); err != nil {
			return Locator{}, err
		}
	case DirectBase64:
		if err := st.stageHTML(v.src.Base64, v.cfg.styles, v.cfg.scrollEnabled); err != nil {
			return Locator{}, err
		}
	case Base64ToLocalPDF:
		if err := st.stagePDF(v.src.Base64); err != nil {
			return Locator{}, err
		}
	}
	return buildLocator(v.strategy, v.src, st)
}

// display hands the locator to the viewer. iOS surfaces double-render when
// given their source before completing an initial load, so they are primed
// with a blank page first.
func (v *View) display(ctx context.Context, loc Locator) (*LoadEvent, error) {
	if v.cfg.platform == IOS && !v.primed {
		if _, err := v.viewer.Display(ctx, Locator{URI: blankPage}); err != nil {
			return nil, err
		}
		v.primed = true
	}
	return v.viewer.Display(ctx, loc)
}

// report routes an error to the configured handler, defaulting to the
// structured logger.
func (v *View) report(err error) {
	if v.cfg.onError != nil {
		v.cfg.onError(err)
		return
	}
	v.cfg.logger.Error("pdf delivery failed", zap.Error(err))
}
