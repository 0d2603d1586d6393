package property

import (
	"io"

	"gopkg.in/yaml.v3"
)

// yamlNode is the YAML-dialect counterpart of one <simple>/<struct>/
// <sequence> element: a flat shape that covers both scalar leaves (Value
// set, Properties empty) and nested bags (Properties set, Value empty).
type yamlNode struct {
	Name        string     `yaml:"name"`
	Type        string     `yaml:"type"`
	Description string     `yaml:"description"`
	Value       string     `yaml:"value"`
	Properties  []yamlNode `yaml:"properties"`
}

type yamlDocument struct {
	Properties []yamlNode `yaml:"properties"`
}

// LoadYAML reads the same logical property tree Load reads from XML, from
// a YAML document shaped as a `properties:` list of `{name, type, value,
// description}` (scalars) or `{name, type, description, properties: [...]}`
// (nested struct/sequence) entries — an alternate front end for the same
// Bag/Property model, enriching TinyDemarshaller.cxx's XML-only original.
func LoadYAML(r io.Reader) (*Bag, error) {
	var root yaml.Node
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&root); err != nil {
		return nil, newError("reading YAML", err)
	}

	var doc yamlDocument
	if err := root.Decode(&doc); err != nil {
		return nil, newError("decoding property document", err)
	}

	bag := &Bag{}
	for _, n := range doc.Properties {
		prop, warnings, err := yamlNodeToProperty(n)
		if err != nil {
			return nil, err
		}
		bag.Warnings = append(bag.Warnings, warnings...)
		if prop != nil {
			bag.Add(prop)
		}
	}
	return bag, nil
}

func yamlNodeToProperty(n yamlNode) (*Property, []string, error) {
	if n.Type == "struct" || n.Type == "sequence" || len(n.Properties) > 0 {
		inner := &Bag{}
		if n.Type != "" {
			inner.Type = n.Type
		}
		var warnings []string
		for _, child := range n.Properties {
			prop, w, err := yamlNodeToProperty(child)
			if err != nil {
				return nil, nil, err
			}
			warnings = append(warnings, w...)
			if prop != nil {
				inner.Add(prop)
			}
		}
		return &Property{Name: n.Name, Description: n.Description, Kind: KindBag, Bag: inner}, warnings, nil
	}

	prop, warn, err := coerceScalar(n.Name, n.Description, n.Type, n.Value)
	if err != nil {
		return nil, nil, err
	}
	if warn != "" {
		return nil, []string{warn}, nil
	}
	return prop, nil, nil
}
