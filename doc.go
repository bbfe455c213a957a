// Package pdfview delivers PDF documents to an embedded web-rendering
// surface. It does not parse or render PDFs itself: given a source that may
// be a remote URL, a local file URI, or an inline base64 payload, it picks a
// delivery strategy for the target platform, stages any temporary artifacts
// the strategy needs, and hands a resolved locator to the viewer.
//
// # Strategies
//
// Five strategies exist, chosen once per source by [ResolveStrategy]:
//
//   - [DirectURL]: the viewer gets the source URI plus headers (Android)
//   - [Base64ToLocalPDF]: the payload is decoded to a staged PDF file (Android)
//   - [DirectBase64]: the payload is embedded in a generated viewer page (iOS)
//   - [URLToBase64]: the document is fetched, base64-encoded, and embedded (iOS)
//   - [GoogleReader]: the URI is wrapped in the Google Docs viewer
//
// # Lifecycle
//
// A [View] ties resolution, validation, and staging to three lifecycle
// moments — mount, source change, and teardown:
//
//	v, err := pdfview.NewView(
//	    pdfview.Source{URI: "https://example.com/doc.pdf"},
//	    pdfview.WithPlatform(pdfview.IOS),
//	    pdfview.WithCacheDir(dir),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := v.Mount(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	loc, ok := v.Locator() // file:// path of the generated viewer page
//	...
//	v.Unmount() // removes staged artifacts
//
// Update re-runs the pipeline when the URI or payload changed:
//
//	err = v.Update(ctx, pdfview.Source{Base64: payload})
//
// # Displaying
//
// Attach a [Viewer] to have locators displayed as part of Mount. The
// production implementation is [ChromeViewer], a headless Chrome surface:
//
//	cv, err := pdfview.NewChromeViewer(pdfview.WithNoSandbox())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cv.Close()
//
//	v, err := pdfview.NewView(src, pdfview.WithViewer(cv))
//
// Chrome or Chromium must be available in PATH, or use [WithAutoDownload].
//
// # Staged artifacts
//
// Web-based strategies write a generated viewer page and the bundled viewer
// script to the cache directory; Base64ToLocalPDF writes the decoded PDF.
// Filenames are fixed, so instances sharing a cache directory race on them —
// configure a distinct [WithCacheDir] per instance when isolation matters.
package pdfview
