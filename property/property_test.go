package property

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadSimpleScalars(t *testing.T) {
	src := `<properties>
  <simple name="speed" type="double"><description>top speed</description><value>12.5</value></simple>
  <simple name="enabled" type="boolean"><value>1</value></simple>
  <simple name="label" type="string"><value>hello</value></simple>
</properties>`

	bag, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	require.Empty(t, bag.Warnings)
	require.Len(t, bag.Properties, 3)

	speed := bag.Find("speed")
	require.NotNil(t, speed)
	require.Equal(t, KindDouble, speed.Kind)
	require.Equal(t, 12.5, speed.Double)
	require.Equal(t, "top speed", speed.Description)

	enabled := bag.Find("enabled")
	require.Equal(t, KindBool, enabled.Kind)
	require.True(t, enabled.Bool)

	label := bag.Find("label")
	require.Equal(t, KindString, label.Kind)
	require.Equal(t, "hello", label.Str)
}

func TestLoadNestedStruct(t *testing.T) {
	src := `<properties>
  <struct name="motor" type="Motor">
    <description>drive motor</description>
    <simple name="rpm" type="long"><value>3000</value></simple>
  </struct>
</properties>`

	bag, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, bag.Properties, 1)

	motor := bag.Properties[0]
	require.Equal(t, KindBag, motor.Kind)
	require.Equal(t, "drive motor", motor.Description)
	require.Equal(t, "Motor", motor.Bag.Type)

	rpm := motor.Bag.Find("rpm")
	require.NotNil(t, rpm)
	require.Equal(t, int64(3000), rpm.Int)
}

func TestLoadMalformedScalarRecordsWarningNotError(t *testing.T) {
	src := `<properties>
  <simple name="flag" type="boolean"><value>maybe</value></simple>
</properties>`

	bag, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	require.Empty(t, bag.Properties)
	require.Len(t, bag.Warnings, 1)
	require.Contains(t, bag.Warnings[0], "flag")
}

func TestLoadMissingPropertiesElementFails(t *testing.T) {
	_, err := Load(strings.NewReader(`<nope></nope>`))
	require.Error(t, err)
}

func TestLoadUnknownTagIsWarningNotError(t *testing.T) {
	src := `<properties>
  <mystery name="x"/>
  <simple name="ok" type="string"><value>y</value></simple>
</properties>`

	bag, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, bag.Properties, 1)
	require.Len(t, bag.Warnings, 1)
	require.Contains(t, bag.Warnings[0], "mystery")
}

func TestLoadYAMLEquivalentTree(t *testing.T) {
	src := `
properties:
  - name: speed
    type: double
    description: top speed
    value: "12.5"
  - name: motor
    type: struct
    description: drive motor
    properties:
      - name: rpm
        type: long
        value: "3000"
`
	bag, err := LoadYAML(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, bag.Properties, 2)

	speed := bag.Find("speed")
	require.Equal(t, KindDouble, speed.Kind)
	require.Equal(t, 12.5, speed.Double)

	motor := bag.Find("motor")
	require.Equal(t, KindBag, motor.Kind)
	rpm := motor.Bag.Find("rpm")
	require.Equal(t, int64(3000), rpm.Int)
}

func TestValidateSchemaAcceptsMatchingBag(t *testing.T) {
	bag := &Bag{}
	bag.Add(&Property{Name: "speed", Kind: KindDouble, Double: 12.5})

	schema := []byte(`{
		"type": "object",
		"properties": { "speed": { "type": "number" } },
		"required": ["speed"]
	}`)
	require.NoError(t, ValidateSchema(bag, schema))
}

func TestValidateSchemaRejectsMismatchedBag(t *testing.T) {
	bag := &Bag{}
	bag.Add(&Property{Name: "speed", Kind: KindString, Str: "fast"})

	schema := []byte(`{
		"type": "object",
		"properties": { "speed": { "type": "number" } },
		"required": ["speed"]
	}`)
	require.Error(t, ValidateSchema(bag, schema))
}
