package resource

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	elementResources = "resources"
	elementString    = "string"
	attrName         = "name"
	attrTranslatable = "translatable"
)

type xmlResources struct {
	XMLName xml.Name    `xml:"resources"`
	Strings []xmlString `xml:"string"`
}

type xmlString struct {
	Name         *string
	Translatable string
	Text         string
}

// UnmarshalXML collects every character data token below the element, nested
// markup included, so Text matches the DOM textContent of the element.
func (s *xmlString) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		if attr.Name.Space != "" {
			continue
		}
		switch attr.Name.Local {
		case attrName:
			name := attr.Value
			s.Name = &name
		case attrTranslatable:
			s.Translatable = attr.Value
		}
	}

	var text strings.Builder
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				s.Text = text.String()
				return nil
			}
			depth--
		}
	}
}

// decodeResources parses a <resources> document. Elements without a name are
// returned in rejected and left out of the entries.
func decodeResources(r io.Reader, sourceFile string) (entries []*Entry, rejected int, err error) {
	var doc xmlResources
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, 0, err
	}
	if err := checkTrailing(dec); err != nil {
		return nil, 0, err
	}

	entries = make([]*Entry, 0, len(doc.Strings))
	for _, s := range doc.Strings {
		if s.Name == nil {
			rejected++
			continue
		}
		entries = append(entries, NewEntry(*s.Name, s.Text, sourceFile, s.Translatable != "false"))
	}
	return entries, rejected, nil
}

// checkTrailing consumes what follows the root element. Only whitespace,
// comments and processing instructions may appear there.
func checkTrailing(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return fmt.Errorf("unexpected text after </%s>", elementResources)
			}
		case xml.StartElement:
			return fmt.Errorf("unexpected element <%s> after </%s>", t.Name.Local, elementResources)
		default:
			return fmt.Errorf("unexpected content after </%s>", elementResources)
		}
	}
}

// encodeResources writes entries as a <resources> document with one <string>
// child per entry, in the given order.
func encodeResources(w io.Writer, entries []*Entry) error {
	for _, e := range entries {
		if err := checkXMLText(e.Name); err != nil {
			return fmt.Errorf("name of %q: %w", e.Name, err)
		}
		if err := checkXMLText(e.Text); err != nil {
			return fmt.Errorf("text of %q: %w", e.Name, err)
		}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "    ")

	root := xml.StartElement{Name: xml.Name{Local: elementResources}}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}
	for _, e := range entries {
		el := xml.StartElement{
			Name: xml.Name{Local: elementString},
			Attr: []xml.Attr{{Name: xml.Name{Local: attrName}, Value: e.Name}},
		}
		if !e.Translatable {
			el.Attr = append(el.Attr, xml.Attr{Name: xml.Name{Local: attrTranslatable}, Value: "false"})
		}
		if err := enc.EncodeToken(el); err != nil {
			return err
		}
		if e.Text != "" {
			if err := enc.EncodeToken(xml.CharData(e.Text)); err != nil {
				return err
			}
		}
		if err := enc.EncodeToken(el.End()); err != nil {
			return err
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// checkXMLText rejects strings the encoder would otherwise silently replace.
func checkXMLText(s string) error {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return fmt.Errorf("invalid UTF-8 at byte %d", i)
			}
		}
		if !isXMLChar(r) {
			return fmt.Errorf("character %U not allowed in XML", r)
		}
	}
	return nil
}

func isXMLChar(r rune) bool {
	return r == 0x09 ||
		r == 0x0A ||
		r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}
