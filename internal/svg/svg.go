// Package svg reads source SVG documents: the declared intrinsic
// dimensions used for fit-scaling, and the inner markup that gets
// re-parented into montage cells.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultSize is substituted when a document declares no usable dimensions.
const DefaultSize = 100.0

// Dimensions returns the declared width and height of an SVG document.
// Explicit width/height attributes win (units such as px, pt, mm are
// stripped); a viewBox is the fallback. ok is false when neither yields a
// positive size, in which case both values are DefaultSize.
func Dimensions(data []byte) (w, h float64, ok bool) {
	root, err := rootElement(data)
	if err != nil {
		return DefaultSize, DefaultSize, false
	}

	var widthAttr, heightAttr, viewBox string
	for _, a := range root.Attr {
		switch a.Name.Local {
		case "width":
			widthAttr = a.Value
		case "height":
			heightAttr = a.Value
		case "viewBox":
			viewBox = a.Value
		}
	}

	w, wOK := parseLength(widthAttr)
	h, hOK := parseLength(heightAttr)
	if wOK && hOK {
		return w, h, true
	}

	if vw, vh, vOK := parseViewBox(viewBox); vOK {
		if !wOK {
			w = vw
		}
		if !hOK {
			h = vh
		}
		return w, h, true
	}

	if !wOK {
		w = DefaultSize
	}
	if !hOK {
		h = DefaultSize
	}
	return w, h, wOK && hOK
}

// InnerContent returns the markup between the root <svg> start tag and its
// matching end tag, trimmed of surrounding whitespace.
func InnerContent(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false

	depth := 0
	start := int64(-1)
	end := int64(-1)
	for {
		before := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse svg: %w", err)
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 1 {
				start = dec.InputOffset()
			}
		case xml.EndElement:
			depth--
			if depth == 0 {
				end = before
			}
		}
	}

	if start < 0 || end < start {
		return "", fmt.Errorf("no root element found")
	}
	return strings.TrimSpace(string(data[start:end])), nil
}

// rootElement returns the first start element of the document.
func rootElement(data []byte) (xml.StartElement, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if err != nil {
			return xml.StartElement{}, fmt.Errorf("parse svg: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se, nil
		}
	}
}

// parseLength parses an SVG length attribute, dropping any trailing unit
// suffix ("px", "pt", "mm", "%", ...). Returns false for empty, malformed,
// or non-positive values.
func parseLength(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	end := len(s)
	for end > 0 {
		c := s[end-1]
		if (c >= '0' && c <= '9') || c == '.' {
			break
		}
		end--
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// parseViewBox extracts width and height from a "minX minY width height"
// viewBox value. Commas are accepted as separators.
func parseViewBox(s string) (w, h float64, ok bool) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) != 4 {
		return 0, 0, false
	}
	w, errW := strconv.ParseFloat(fields[2], 64)
	h, errH := strconv.ParseFloat(fields[3], 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}
