package property

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

// Load reads a property document in the XML dialect TinyDemarshaller.cxx
// defines (a root `<properties>` element containing `<simple>`,
// `<struct>`, and `<sequence>` children) and returns the resulting Bag.
// Malformed scalar bodies are recorded as non-fatal warnings on the
// returned Bag rather than aborting the load, matching the original's
// continue-on-error `log(Error) ... return false` behavior at the level of
// that one property rather than the whole document.
func Load(r io.Reader) (*Bag, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, newError("no <properties> element found in document", nil)
		}
		if err != nil {
			return nil, newError("reading XML", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "properties" {
			continue
		}
		bag, _, warnings, err := decodeContainer(dec, start.Name)
		if err != nil {
			return nil, err
		}
		bag.Warnings = warnings
		return bag, nil
	}
}

func attrValue(start xml.StartElement, name string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// decodeContainer walks the children of a `<properties>`, `<struct>`, or
// `<sequence>` element (all three share the same child grammar in the
// original handler's tag stack) until its matching end tag, returning the
// assembled Bag, its `<description>` child's text if any, and any
// non-fatal warnings encountered.
func decodeContainer(dec *xml.Decoder, enclosing xml.Name) (*Bag, string, []string, error) {
	bag := &Bag{}
	var description string
	var warnings []string

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, "", nil, newError("reading XML", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "description":
				description, err = readCharData(dec, t.Name)
				if err != nil {
					return nil, "", nil, err
				}
			case "simple":
				prop, warn, err := decodeSimple(dec, t)
				if err != nil {
					return nil, "", nil, err
				}
				if warn != "" {
					warnings = append(warnings, warn)
				}
				if prop != nil {
					bag.Add(prop)
				}
			case "struct", "sequence":
				prop, innerWarnings, err := decodeNestedBag(dec, t)
				if err != nil {
					return nil, "", nil, err
				}
				warnings = append(warnings, innerWarnings...)
				bag.Add(prop)
			default:
				warnings = append(warnings, fmt.Sprintf("unrecognised XML tag %q: ignoring", t.Name.Local))
				if err := dec.Skip(); err != nil {
					return nil, "", nil, newError("reading XML", err)
				}
			}
		case xml.EndElement:
			if t.Name == enclosing {
				return bag, description, warnings, nil
			}
		}
	}
}

func decodeNestedBag(dec *xml.Decoder, start xml.StartElement) (*Property, []string, error) {
	name, _ := attrValue(start, "name")
	typ, hasType := attrValue(start, "type")

	inner, description, warnings, err := decodeContainer(dec, start.Name)
	if err != nil {
		return nil, nil, err
	}
	if hasType {
		inner.Type = typ
	}
	return &Property{Name: name, Description: description, Kind: KindBag, Bag: inner}, warnings, nil
}

func decodeSimple(dec *xml.Decoder, start xml.StartElement) (*Property, string, error) {
	name, _ := attrValue(start, "name")
	typ, _ := attrValue(start, "type")
	var description, value string

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, "", newError("reading XML", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "description":
				description, err = readCharData(dec, t.Name)
			case "value":
				value, err = readCharData(dec, t.Name)
			default:
				err = dec.Skip()
			}
			if err != nil {
				return nil, "", newError("reading XML", err)
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return coerceScalar(name, description, typ, value)
			}
		}
	}
}

func readCharData(dec *xml.Decoder, name xml.Name) (string, error) {
	var sb []byte
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb = append(sb, t...)
		case xml.EndElement:
			if t.Name == name {
				return string(sb), nil
			}
		}
	}
}

// coerceScalar reproduces TinyDemarshaller.cxx's endElement type switch: a
// mismatch between the declared type and the parsed text is a non-fatal
// warning (the property is simply dropped), not a Load failure.
func coerceScalar(name, description, typ, value string) (*Property, string, error) {
	switch typ {
	case "boolean":
		switch value {
		case "1":
			return &Property{Name: name, Description: description, Kind: KindBool, Bool: true}, "", nil
		case "0":
			return &Property{Name: name, Description: description, Kind: KindBool, Bool: false}, "", nil
		default:
			return nil, fmt.Sprintf("wrong value for property %q: value should contain '0' or '1', got %q", name, value), nil
		}
	case "char", "uchar":
		runes := []rune(value)
		if len(runes) != 1 {
			return nil, fmt.Sprintf("wrong value for property %q: value should contain a single character, got %q", name, value), nil
		}
		return &Property{Name: name, Description: description, Kind: KindChar, Char: runes[0]}, "", nil
	case "long", "short":
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Sprintf("wrong value for property %q: value should contain an integer value, got %q", name, value), nil
		}
		return &Property{Name: name, Description: description, Kind: KindInt, Int: v}, "", nil
	case "ulong", "ushort":
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, fmt.Sprintf("wrong value for property %q: value should contain an integer value, got %q", name, value), nil
		}
		return &Property{Name: name, Description: description, Kind: KindUint, Uint: v}, "", nil
	case "double":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Sprintf("wrong value for property %q: value should contain a double value, got %q", name, value), nil
		}
		return &Property{Name: name, Description: description, Kind: KindDouble, Double: v}, "", nil
	case "float":
		v, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return nil, fmt.Sprintf("wrong value for property %q: value should contain a float value, got %q", name, value), nil
		}
		return &Property{Name: name, Description: description, Kind: KindFloat, Float: float32(v)}, "", nil
	case "string":
		return &Property{Name: name, Description: description, Kind: KindString, Str: value}, "", nil
	default:
		return nil, fmt.Sprintf("unrecognised property type %q for property %q: ignoring", typ, name), nil
	}
}
