// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package svgchart extracts structured chart data from rendered chart SVGs.
// It rebuilds the chart's cell grid from the straight lines in the drawing,
// assigns every text token to the cell that contains it, and reads the sign
// number labels to turn cells into zodiac signs.
package svgchart

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// entityRef matches a named, decimal or hexadecimal character reference at
// the start of the input.
var entityRef = regexp.MustCompile(`^&(?:([A-Za-z][A-Za-z0-9]*)|#([0-9]+)|#[xX]([0-9A-Fa-f]+));`)

// xmlEntities are the references every XML parser predefines.
var xmlEntities = map[string]bool{"amp": true, "lt": true, "gt": true, "quot": true, "apos": true}

// ErrMalformedDocument matches any MalformedDocumentError via errors.Is.
var ErrMalformedDocument = errors.New("malformed SVG document")

// MalformedDocumentError is returned when a chart SVG is not well-formed
// markup, even after bare ampersands have been escaped.
type MalformedDocumentError struct {
	Err error // Underlying decoder error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed SVG document: %v", e.Err)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

func (e *MalformedDocumentError) Is(target error) bool {
	return target == ErrMalformedDocument
}

// TextNode is a rendered text token and its anchor position.
type TextNode struct {
	X       float64
	Y       float64
	Content string // Trimmed, never empty
}

// Document holds the drawing primitives read from a chart SVG, in document
// order.
type Document struct {
	Lines []GridLine
	Texts []TextNode
}

// openText accumulates the character data of a <text> element until it
// closes.
type openText struct {
	attrs []xml.Attr
	depth int
	buf   bytes.Buffer
}

// Parse reads the line and text elements of an SVG document. Bare '&'
// characters that do not start a character reference are escaped first,
// since the provider sometimes emits them unescaped. Any remaining syntax
// error is fatal: no partial document is returned.
func Parse(svg []byte) (*Document, error) {
	if !utf8.Valid(svg) {
		return nil, &MalformedDocumentError{Err: errors.New("document is not valid UTF-8")}
	}

	dec := xml.NewDecoder(strings.NewReader(repairEntities(string(svg))))
	dec.Entity = xml.HTMLEntity
	// The input was checked as UTF-8 above, whatever the prolog declares.
	dec.CharsetReader = func(_ string, in io.Reader) (io.Reader, error) {
		return in, nil
	}

	doc := &Document{}
	var (
		text    *openText
		depth   int
		sawRoot bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &MalformedDocumentError{Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			sawRoot = true
			depth++
			switch t.Name.Local {
			case "line":
				if ln, ok := lineFromAttrs(t.Attr); ok {
					doc.Lines = append(doc.Lines, ln)
				}
			case "text":
				if text == nil {
					text = &openText{attrs: t.Attr, depth: depth}
				}
			}

		case xml.EndElement:
			if text != nil && depth == text.depth {
				if node, ok := text.node(); ok {
					doc.Texts = append(doc.Texts, node)
				}
				text = nil
			}
			depth--

		case xml.CharData:
			if text != nil {
				text.buf.Write(t)
			}
		}
	}

	if !sawRoot {
		return nil, &MalformedDocumentError{Err: errors.New("no root element")}
	}
	return doc, nil
}

// node converts the accumulated element into a TextNode. Elements with
// empty content or missing/unparsable coordinates are skipped.
func (o *openText) node() (TextNode, bool) {
	content := strings.TrimSpace(o.buf.String())
	if content == "" {
		return TextNode{}, false
	}
	x, okX := floatAttr(o.attrs, "x")
	y, okY := floatAttr(o.attrs, "y")
	if !okX || !okY {
		return TextNode{}, false
	}
	return TextNode{X: x, Y: y, Content: content}, true
}

// repairEntities escapes every '&' that does not begin a character
// reference the decoder can resolve.
func repairEntities(svg string) string {
	if !strings.Contains(svg, "&") {
		return svg
	}

	var b strings.Builder
	b.Grow(len(svg) + 16)
	for i := 0; i < len(svg); i++ {
		if svg[i] == '&' && !knownReference(svg[i:]) {
			b.WriteString("&amp;")
			continue
		}
		b.WriteByte(svg[i])
	}
	return b.String()
}

// knownReference reports whether s starts with a reference to a predefined
// XML entity, an HTML entity, or a legal XML character.
func knownReference(s string) bool {
	m := entityRef.FindStringSubmatch(s)
	switch {
	case m == nil:
		return false
	case m[1] != "":
		_, html := xml.HTMLEntity[m[1]]
		return xmlEntities[m[1]] || html
	case m[2] != "":
		return validCharRef(m[2], 10)
	default:
		return validCharRef(m[3], 16)
	}
}

// validCharRef reports whether digits name a character allowed in XML.
func validCharRef(digits string, base int) bool {
	n, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return false
	}
	r := rune(n)
	return r == 0x9 || r == 0xA || r == 0xD ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}

// floatAttr looks up an attribute by local name and parses it as a number.
func floatAttr(attrs []xml.Attr, name string) (float64, bool) {
	for _, a := range attrs {
		if a.Name.Local != name {
			continue
		}
		v := strings.TrimSpace(a.Value)
		if v == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
