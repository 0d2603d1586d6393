package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/higor-melo/ior/internal/lex"
	"github.com/higor-melo/ior/property"
	"github.com/spf13/cobra"
)

func newPropsCommand(logger *slog.Logger) *cobra.Command {
	var format string
	var typeFilter string
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "props <file>",
		Short: "Load and dump a property document (XML or YAML)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				printErr(err)
				return err
			}
			defer f.Close()

			var bag *property.Bag
			switch strings.ToLower(format) {
			case "xml", "":
				bag, err = property.Load(f)
			case "yaml", "yml":
				bag, err = property.LoadYAML(f)
			default:
				err = fmt.Errorf("unknown --format %q: want xml or yaml", format)
			}
			if err != nil {
				printErr(err)
				return err
			}

			for _, w := range bag.Warnings {
				logger.Warn("property warning", "file", path, "warning", w)
			}

			if schemaPath != "" {
				schema, err := os.ReadFile(schemaPath)
				if err != nil {
					printErr(err)
					return err
				}
				if err := property.ValidateSchema(bag, schema); err != nil {
					printErr(err)
					return err
				}
			}

			out := cmd.OutOrStdout()
			for _, p := range bag.Properties {
				if typeFilter != "" && lex.FoldTypeName(p.Kind.String()) != lex.FoldTypeName(typeFilter) {
					continue
				}
				printProperty(out, p, 0)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "xml", "document format: xml or yaml")
	cmd.Flags().StringVar(&typeFilter, "type", "", "only print top-level properties of this kind (boolean, char, long, ulong, float, double, string, bag; short and ushort properties are long and ulong)")
	cmd.Flags().StringVar(&schemaPath, "schema", "", "validate the loaded bag against a JSON Schema file before printing")
	return cmd
}

func printProperty(out io.Writer, p *property.Property, depth int) {
	indent := strings.Repeat("  ", depth)
	if p.Kind == property.KindBag {
		fmt.Fprintf(out, "%s%s (%s)\n", indent, p.Name, p.Bag.Type)
		for _, child := range p.Bag.Properties {
			printProperty(out, child, depth+1)
		}
		return
	}
	fmt.Fprintf(out, "%s%s: %s = %s\n", indent, p.Name, p.Kind, propertyValueString(p))
}

func propertyValueString(p *property.Property) string {
	switch p.Kind {
	case property.KindBool:
		return fmt.Sprintf("%v", p.Bool)
	case property.KindChar:
		return string(p.Char)
	case property.KindInt:
		return fmt.Sprintf("%d", p.Int)
	case property.KindUint:
		return fmt.Sprintf("%d", p.Uint)
	case property.KindFloat:
		return fmt.Sprintf("%v", p.Float)
	case property.KindDouble:
		return fmt.Sprintf("%v", p.Double)
	case property.KindString:
		return p.Str
	default:
		return ""
	}
}
