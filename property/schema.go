package property

import (
	"bytes"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidateSchema checks bag's JSON-shaped projection against schemaJSON, a
// JSON Schema document. This has no counterpart in TinyDemarshaller.cxx —
// it supplements the original with an optional structural check a deployer
// can run after Load/LoadYAML, rather than the original's all-or-nothing
// scalar coercion.
func ValidateSchema(bag *Bag, schemaJSON []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("bag.schema.json", bytes.NewReader(schemaJSON)); err != nil {
		return newError("compiling schema", err)
	}
	schema, err := compiler.Compile("bag.schema.json")
	if err != nil {
		return newError("compiling schema", err)
	}

	doc, err := bagToJSONValue(bag)
	if err != nil {
		return newError("projecting bag to JSON", err)
	}
	if err := schema.Validate(doc); err != nil {
		return newError("schema validation failed", err)
	}
	return nil
}

// bagToJSONValue projects a Bag into the generic map[string]interface{}
// shape jsonschema.Validate expects, round-tripping through encoding/json
// so nested bags and scalar kinds all land on the handful of types JSON
// Schema understands (string, number, bool, object).
func bagToJSONValue(bag *Bag) (interface{}, error) {
	raw, err := json.Marshal(bagToJSONMap(bag))
	if err != nil {
		return nil, err
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func bagToJSONMap(bag *Bag) map[string]interface{} {
	out := make(map[string]interface{}, len(bag.Properties))
	for _, p := range bag.Properties {
		out[p.Name] = propertyToJSONValue(p)
	}
	return out
}

func propertyToJSONValue(p *Property) interface{} {
	switch p.Kind {
	case KindBool:
		return p.Bool
	case KindChar:
		return string(p.Char)
	case KindInt:
		return p.Int
	case KindUint:
		return p.Uint
	case KindFloat:
		return p.Float
	case KindDouble:
		return p.Double
	case KindString:
		return p.Str
	case KindBag:
		return bagToJSONMap(p.Bag)
	default:
		return nil
	}
}
