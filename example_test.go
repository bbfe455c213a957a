package pdfview_test

import (
	"context"
	"fmt"
	"log"
	"os"

	pdfview "github.com/porticus-lab/go-pdf-view"
)

func ExampleResolveStrategy() {
	src := pdfview.Source{URI: "https://x/doc.pdf"}

	fmt.Println(pdfview.ResolveStrategy(pdfview.Android, src, false))
	fmt.Println(pdfview.ResolveStrategy(pdfview.IOS, src, false))
	fmt.Println(pdfview.ResolveStrategy(pdfview.IOS, src, true))
	// Output:
	// direct-url
	// url-to-base64
	// google-reader
}

func Example() {
	dir, err := os.MkdirTemp("", "pdfview-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	// A remote document on Android is delivered as a direct URL; nothing is
	// staged on disk.
	v, err := pdfview.NewView(
		pdfview.Source{URI: "https://x/doc.pdf"},
		pdfview.WithPlatform(pdfview.Android),
		pdfview.WithCacheDir(dir),
	)
	if err != nil {
		log.Fatal(err)
	}
	if err := v.Mount(context.Background()); err != nil {
		log.Fatal(err)
	}
	defer v.Unmount()

	loc, _ := v.Locator()
	fmt.Println(v.Strategy(), loc)
	// Output:
	// direct-url https://x/doc.pdf
}

func Example_chromeViewer() {
	// Attach a headless Chrome surface to have locators displayed as part
	// of Mount. Chrome must be installed, or use WithAutoDownload.
	viewer, err := pdfview.NewChromeViewer(pdfview.WithNoSandbox())
	if err != nil {
		log.Fatal(err)
	}
	defer viewer.Close()

	v, err := pdfview.NewView(
		pdfview.Source{URI: "https://example.com/report.pdf"},
		pdfview.WithPlatform(pdfview.IOS),
		pdfview.WithViewer(viewer),
		pdfview.WithLoadHandler(func(ev *pdfview.LoadEvent) {
			fmt.Printf("loaded %s\n", ev.URI)
		}),
	)
	if err != nil {
		log.Fatal(err)
	}
	if err := v.Mount(context.Background()); err != nil {
		log.Fatal(err)
	}
	defer v.Unmount()
}
