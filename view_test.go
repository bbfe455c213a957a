package pdfview_test

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pdfview "github.com/porticus-lab/go-pdf-view"
)

var testPDF = []byte("%PDF-1.4 fake content for testing")

func testPayload() string {
	return "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(testPDF)
}

// fakeViewer records the locators it is asked to display.
type fakeViewer struct {
	displayed []pdfview.Locator
	fail      error
}

func (f *fakeViewer) Display(_ context.Context, loc pdfview.Locator) (*pdfview.LoadEvent, error) {
	f.displayed = append(f.displayed, loc)
	if f.fail != nil {
		return nil, f.fail
	}
	return &pdfview.LoadEvent{URI: loc.URI}, nil
}

func (f *fakeViewer) Close() error { return nil }

func newTestView(t *testing.T, src pdfview.Source, opts ...pdfview.Option) (*pdfview.View, string) {
	t.Helper()
	dir := t.TempDir()
	v, err := pdfview.NewView(src, append(opts, pdfview.WithCacheDir(dir))...)
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}
	return v, dir
}

func cacheEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestMount_DirectURL(t *testing.T) {
	src := pdfview.Source{URI: "https://x/doc.pdf"}
	v, dir := newTestView(t, src, pdfview.WithPlatform(pdfview.Android))

	if err := v.Mount(context.Background()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if got := v.Strategy(); got != pdfview.DirectURL {
		t.Errorf("Strategy() = %v, want DirectURL", got)
	}
	loc, ok := v.Locator()
	if !ok {
		t.Fatal("Locator() not ready after Mount")
	}
	if loc.URI != src.URI {
		t.Errorf("locator = %q, want the original URI %q", loc.URI, src.URI)
	}
	if got := cacheEntries(t, dir); len(got) != 0 {
		t.Errorf("DirectURL staged files %v, want none", got)
	}
}

func TestMount_URLToBase64(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(testPDF)
	}))
	defer srv.Close()

	v, dir := newTestView(t, pdfview.Source{URI: srv.URL},
		pdfview.WithPlatform(pdfview.IOS),
		pdfview.WithHTTPClient(srv.Client()),
	)

	if err := v.Mount(context.Background()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if got := v.Strategy(); got != pdfview.URLToBase64 {
		t.Errorf("Strategy() = %v, want URLToBase64", got)
	}

	loc, ok := v.Locator()
	if !ok {
		t.Fatal("Locator() not ready after Mount")
	}
	if !loc.IsFile() || !strings.HasSuffix(loc.URI, "viewer.html") {
		t.Errorf("locator = %q, want the staged viewer page", loc.URI)
	}

	page, err := os.ReadFile(filepath.Join(dir, "viewer.html"))
	if err != nil {
		t.Fatalf("reading staged page: %v", err)
	}
	if !strings.Contains(string(page), `data-pdf="`+testPayload()+`"`) {
		t.Error("staged page does not embed the fetched payload as its data attribute")
	}
}

func TestMount_Base64ToLocalPDF(t *testing.T) {
	v, dir := newTestView(t, pdfview.Source{Base64: testPayload()},
		pdfview.WithPlatform(pdfview.Android))

	if err := v.Mount(context.Background()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if got := v.Strategy(); got != pdfview.Base64ToLocalPDF {
		t.Errorf("Strategy() = %v, want Base64ToLocalPDF", got)
	}

	data, err := os.ReadFile(filepath.Join(dir, "document.pdf"))
	if err != nil {
		t.Fatalf("reading staged pdf: %v", err)
	}
	if string(data) != string(testPDF) {
		t.Error("staged pdf does not match the decoded payload")
	}
}

func TestMount_GoogleReader(t *testing.T) {
	v, dir := newTestView(t, pdfview.Source{URI: "https://x/doc.pdf"},
		pdfview.WithGoogleReader())

	if err := v.Mount(context.Background()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	loc, _ := v.Locator()
	if !strings.HasPrefix(loc.URI, "https://docs.google.com/viewer?") {
		t.Errorf("locator = %q, want a Google Docs viewer URL", loc.URI)
	}
	if !strings.Contains(loc.URI, "https%3A%2F%2Fx%2Fdoc.pdf") {
		t.Errorf("locator %q does not wrap the escaped source URI", loc.URI)
	}
	if got := cacheEntries(t, dir); len(got) != 0 {
		t.Errorf("GoogleReader staged files %v, want none", got)
	}
}

func TestMount_InvalidPayloadBlocksStaging(t *testing.T) {
	var reported []error
	v, dir := newTestView(t, pdfview.Source{Base64: "JVBERi0="}, // missing data-URI prefix
		pdfview.WithPlatform(pdfview.IOS),
		pdfview.WithErrorHandler(func(err error) { reported = append(reported, err) }),
	)

	if err := v.Mount(context.Background()); err == nil {
		t.Fatal("Mount succeeded with an invalid payload")
	}
	if len(reported) != 1 {
		t.Errorf("error handler invoked %d times, want exactly 1", len(reported))
	}
	if got := cacheEntries(t, dir); len(got) != 0 {
		t.Errorf("invalid payload staged files %v, want none", got)
	}
	if got := v.State(); got != pdfview.StateResolved {
		t.Errorf("State() = %v, want StateResolved (never ready)", got)
	}
	if _, ok := v.Locator(); ok {
		t.Error("Locator() reported ready after a blocked render")
	}
}

func TestMount_UnknownStrategyReported(t *testing.T) {
	var reported []error
	v, _ := newTestView(t, pdfview.Source{},
		pdfview.WithErrorHandler(func(err error) { reported = append(reported, err) }),
	)

	err := v.Mount(context.Background())
	if !errors.Is(err, pdfview.ErrUnknownStrategy) {
		t.Fatalf("Mount = %v, want ErrUnknownStrategy", err)
	}
	if len(reported) != 1 {
		t.Errorf("error handler invoked %d times, want exactly 1", len(reported))
	}
}

func TestUpdate_SourceChangeResetsReady(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(testPDF)
	}))
	defer ok.Close()
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer failing.Close()

	v, _ := newTestView(t, pdfview.Source{URI: ok.URL},
		pdfview.WithPlatform(pdfview.IOS),
		pdfview.WithErrorHandler(func(error) {}),
	)

	if err := v.Mount(context.Background()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if got := v.State(); got != pdfview.StateReady {
		t.Fatalf("State() after Mount = %v, want StateReady", got)
	}

	// The new URI fails to stage: the ready flag dropped before re-resolving
	// must stay dropped.
	if err := v.Update(context.Background(), pdfview.Source{URI: failing.URL}); err == nil {
		t.Fatal("Update succeeded against a failing source")
	}
	if got := v.State(); got != pdfview.StateResolved {
		t.Errorf("State() after failed Update = %v, want StateResolved", got)
	}
	if _, ready := v.Locator(); ready {
		t.Error("Locator() still ready after the source changed")
	}
}

func TestUpdate_UnchangedSourceIsNoop(t *testing.T) {
	loads := 0
	src := pdfview.Source{URI: "https://x/doc.pdf"}
	v, _ := newTestView(t, src,
		pdfview.WithPlatform(pdfview.Android),
		pdfview.WithViewer(&fakeViewer{}),
		pdfview.WithLoadHandler(func(*pdfview.LoadEvent) { loads++ }),
	)

	if err := v.Mount(context.Background()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if err := v.Update(context.Background(), src); err != nil {
		t.Fatalf("Update with unchanged source: %v", err)
	}
	if loads != 1 {
		t.Errorf("load handler invoked %d times, want 1 (no re-render)", loads)
	}
	if got := v.State(); got != pdfview.StateReady {
		t.Errorf("State() = %v, want StateReady", got)
	}
}

func TestUnmount_RemovesStagedPDF(t *testing.T) {
	v, dir := newTestView(t, pdfview.Source{Base64: testPayload()},
		pdfview.WithPlatform(pdfview.Android))

	if err := v.Mount(context.Background()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "document.pdf")); err != nil {
		t.Fatalf("staged pdf missing before Unmount: %v", err)
	}

	v.Unmount()

	if _, err := os.Stat(filepath.Join(dir, "document.pdf")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("staged pdf still present after Unmount (stat err: %v)", err)
	}
	if got := v.State(); got != pdfview.StateUninitialized {
		t.Errorf("State() after Unmount = %v, want StateUninitialized", got)
	}
}

func TestUnmount_LeavesCacheAloneForDirectStrategies(t *testing.T) {
	for _, tt := range []struct {
		name string
		opts []pdfview.Option
	}{
		{"direct url", []pdfview.Option{pdfview.WithPlatform(pdfview.Android)}},
		{"google reader", []pdfview.Option{pdfview.WithGoogleReader()}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			v, dir := newTestView(t, pdfview.Source{URI: "https://x/doc.pdf"}, tt.opts...)

			// An unrelated file in the cache dir must survive teardown.
			bystander := filepath.Join(dir, "unrelated.txt")
			if err := os.WriteFile(bystander, []byte("keep"), 0o644); err != nil {
				t.Fatal(err)
			}

			if err := v.Mount(context.Background()); err != nil {
				t.Fatalf("Mount: %v", err)
			}
			v.Unmount()

			if got := cacheEntries(t, dir); len(got) != 1 || got[0] != "unrelated.txt" {
				t.Errorf("cache dir after Unmount = %v, want only the unrelated file", got)
			}
		})
	}
}

func TestMount_ViewerReceivesLocator(t *testing.T) {
	viewer := &fakeViewer{}
	var started bool
	var loaded *pdfview.LoadEvent

	src := pdfview.Source{URI: "https://x/doc.pdf", Headers: map[string]string{"X-Auth": "t"}}
	v, _ := newTestView(t, src,
		pdfview.WithPlatform(pdfview.Android),
		pdfview.WithViewer(viewer),
		pdfview.WithLoadStartHandler(func() { started = true }),
		pdfview.WithLoadHandler(func(ev *pdfview.LoadEvent) { loaded = ev }),
	)

	if err := v.Mount(context.Background()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if !started {
		t.Error("load start handler never invoked")
	}
	if loaded == nil || loaded.URI != src.URI {
		t.Errorf("load handler got %+v, want event for %q", loaded, src.URI)
	}
	if len(viewer.displayed) != 1 {
		t.Fatalf("viewer displayed %d locators, want 1", len(viewer.displayed))
	}
	if viewer.displayed[0].Headers["X-Auth"] != "t" {
		t.Error("viewer locator lost the source headers")
	}
}

func TestMount_IOSPrimesViewerWithBlankPage(t *testing.T) {
	viewer := &fakeViewer{}
	v, _ := newTestView(t, pdfview.Source{Base64: testPayload()},
		pdfview.WithPlatform(pdfview.IOS),
		pdfview.WithViewer(viewer),
	)

	if err := v.Mount(context.Background()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if len(viewer.displayed) != 2 {
		t.Fatalf("viewer displayed %d locators, want blank page then source", len(viewer.displayed))
	}
	if viewer.displayed[0].URI != "about:blank" {
		t.Errorf("first display = %q, want about:blank", viewer.displayed[0].URI)
	}
	if !viewer.displayed[1].IsFile() {
		t.Errorf("second display = %q, want the staged viewer page", viewer.displayed[1].URI)
	}

	// The prime happens once per mounted lifetime, not per render.
	if err := v.Update(context.Background(), pdfview.Source{Base64: testPayload() + "AA=="}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(viewer.displayed) != 3 {
		t.Errorf("viewer displayed %d locators after update, want 3 (no second prime)", len(viewer.displayed))
	}
}

func TestMount_ViewerFailureReported(t *testing.T) {
	var reported []error
	viewer := &fakeViewer{fail: errors.New("surface crashed")}
	v, _ := newTestView(t, pdfview.Source{URI: "https://x/doc.pdf"},
		pdfview.WithPlatform(pdfview.Android),
		pdfview.WithViewer(viewer),
		pdfview.WithErrorHandler(func(err error) { reported = append(reported, err) }),
	)

	if err := v.Mount(context.Background()); err == nil {
		t.Fatal("Mount succeeded despite viewer failure")
	}
	if len(reported) != 1 {
		t.Errorf("error handler invoked %d times, want 1", len(reported))
	}
}
