// Package importer loads montage sources from vector files (SVG, DXF) and
// source manifests (CSV, Excel). It supports automatic delimiter
// detection, flexible column mapping, and case-insensitive header
// recognition for manifests.
package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/svgmontage/internal/model"
	"github.com/piwi3910/svgmontage/internal/svg"
)

// LoadSource reads one vector source file and returns it with its
// intrinsic dimensions and lifted content. Warnings report recovered
// problems (defaulted dimensions, unliftable content); an error means the
// file could not be read at all.
func LoadSource(path string) (model.SourceImage, []string, error) {
	if strings.EqualFold(filepath.Ext(path), ".dxf") {
		return loadDXF(path)
	}
	return loadSVG(path)
}

// LoadSources loads every path in order, accumulating warnings. The first
// unreadable file aborts the load.
func LoadSources(paths []string) ([]model.SourceImage, []string, error) {
	var sources []model.SourceImage
	var warnings []string
	for _, path := range paths {
		src, w, err := LoadSource(path)
		if err != nil {
			return nil, warnings, err
		}
		warnings = append(warnings, w...)
		sources = append(sources, src)
	}
	return sources, warnings, nil
}

// loadSVG reads an SVG file. Missing or malformed dimensions fall back to
// svg.DefaultSize with a warning; content that cannot be lifted leaves the
// cell body empty with a warning.
func loadSVG(path string) (model.SourceImage, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.SourceImage{}, nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var warnings []string

	w, h, ok := svg.Dimensions(data)
	if !ok {
		warnings = append(warnings,
			fmt.Sprintf("%s: no usable dimensions, using default %.0fx%.0f", path, w, h))
	}

	content, err := svg.InnerContent(data)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("%s: cannot lift content: %v", path, err))
		content = ""
	}

	src := model.NewSourceImage(path, w, h)
	src.Content = content
	return src, warnings, nil
}
