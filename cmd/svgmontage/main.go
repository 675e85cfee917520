// SVGMontage — vector image grid composer
//
// Arranges a set of SVG (or DXF) source files into one combined SVG laid
// out as a grid, scaling each input to fit its cell and labeling it with
// its filename. Optionally writes a contact-sheet PDF and a QR label
// sheet alongside the SVG.
//
// Build:
//   go build -o svgmontage ./cmd/svgmontage
//
// Usage:
//   svgmontage file1.svg file2.svg ... file8.svg [output.svg]
//   svgmontage -manifest sources.csv
//   svgmontage -session montage.json -pdf contact.pdf

package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/svgmontage/internal/export"
	"github.com/piwi3910/svgmontage/internal/importer"
	"github.com/piwi3910/svgmontage/internal/layout"
	"github.com/piwi3910/svgmontage/internal/model"
	"github.com/piwi3910/svgmontage/internal/project"
)

func main() {
	log.SetFlags(0)

	configPath := flag.String("config", project.DefaultConfigPath(), "application config file")
	manifestPath := flag.String("manifest", "", "CSV or XLSX manifest listing source files")
	sessionPath := flag.String("session", "", "montage session file to load")
	pdfPath := flag.String("pdf", "", "also write a contact-sheet PDF to this path")
	labelsPath := flag.String("labels", "", "also write a QR label sheet PDF to this path")
	flag.Parse()

	config, err := project.LoadAppConfig(*configPath)
	if err != nil {
		log.Printf("warning: cannot load config %s: %v", *configPath, err)
		config = model.DefaultAppConfig()
	}
	spec := model.DefaultGridSpec()
	config.ApplyToSpec(&spec)

	paths, captions, output, specOverride := collectSources(*sessionPath, *manifestPath, flag.Args())
	if specOverride != nil {
		spec = *specOverride
	}
	if len(paths) == 0 {
		log.Println("usage: svgmontage [flags] file1.svg file2.svg ... [output.svg]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	sources, warnings, err := importer.LoadSources(paths)
	if err != nil {
		log.Fatalf("error: %v", err)
	}
	for _, w := range warnings {
		log.Printf("warning: %s", w)
	}
	for i := range sources {
		if caption, ok := captions[sources[i].Path]; ok {
			sources[i].Caption = caption
		}
	}

	if len(sources) < spec.Capacity() {
		log.Printf("warning: %d sources for a %dx%d grid, remaining cells will be empty",
			len(sources), spec.Rows, spec.Cols)
	}

	montage, dropped := layout.Arrange(sources, spec)
	if dropped > 0 {
		log.Printf("warning: %d sources exceed the %d-cell grid, using the first %d",
			len(sources), spec.Capacity(), spec.Capacity())
	}

	if err := export.WriteSVG(output, montage); err != nil {
		log.Fatalf("error: cannot write %s: %v", output, err)
	}
	log.Printf("Created grid SVG: %s (%.0fx%.0f, %d of %d cells filled)",
		output, spec.TotalWidth(), spec.TotalHeight(), len(montage.Placements), spec.Capacity())

	if *pdfPath != "" {
		if err := export.ExportPDF(*pdfPath, montage); err != nil {
			log.Fatalf("error: cannot write %s: %v", *pdfPath, err)
		}
		log.Printf("Created contact sheet: %s", *pdfPath)
	}

	if *labelsPath != "" {
		if err := export.ExportLabels(*labelsPath, montage); err != nil {
			log.Fatalf("error: cannot write %s: %v", *labelsPath, err)
		}
		log.Printf("Created label sheet: %s", *labelsPath)
	}

	project.RememberOutput(&config, output)
	if err := project.SaveAppConfig(*configPath, config); err != nil {
		log.Printf("warning: cannot save config %s: %v", *configPath, err)
	}
}

// collectSources resolves the source list and output name from, in order
// of precedence, a session file, a manifest, or the command line. The
// captions map carries manifest caption overrides keyed by source path;
// spec is non-nil only when a session supplies its own grid.
func collectSources(sessionPath, manifestPath string, args []string) (paths []string, captions map[string]string, output string, spec *model.GridSpec) {
	captions = map[string]string{}
	output = model.DefaultOutputName

	if sessionPath != "" {
		session, err := project.LoadSession(sessionPath)
		if err != nil {
			log.Fatalf("error: %v", err)
		}
		return session.Sources, captions, session.Output, &session.Spec
	}

	if manifestPath != "" {
		entries, result := importer.LoadManifest(manifestPath)
		for _, e := range result.Errors {
			log.Printf("manifest error: %s", e)
		}
		for _, w := range result.Warnings {
			log.Printf("manifest warning: %s", w)
		}
		if len(result.Errors) > 0 && len(entries) == 0 {
			log.Fatalf("error: no usable entries in manifest %s", manifestPath)
		}
		for _, e := range entries {
			paths = append(paths, e.Path)
			if e.Caption != "" {
				captions[e.Path] = e.Caption
			}
		}
		return paths, captions, output, nil
	}

	paths = args
	// The last argument is the output path when it names a .svg file that
	// does not exist yet. Anything else stays an input, so a mistyped
	// input path still aborts with a diagnostic instead of being silently
	// consumed as the output.
	if len(paths) >= 2 {
		last := paths[len(paths)-1]
		if strings.EqualFold(filepath.Ext(last), ".svg") {
			if _, err := os.Stat(last); os.IsNotExist(err) {
				output = last
				paths = paths[:len(paths)-1]
			}
		}
	}
	return paths, captions, output, nil
}
