// Package metafmt renders decoded module metadata for humans and tools.
package metafmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lumen/internal/metadata"
)

// PrettyOpts controls the human-readable renderer.
type PrettyOpts struct {
	Color bool
}

const nameColumn = 24

// Pretty writes a column-aligned, optionally colored dump of an envelope.
func Pretty(w io.Writer, env *metadata.ModuleEnvelope, opts PrettyOpts) error {
	head := color.New(color.FgCyan, color.Bold)
	kind := color.New(color.FgYellow)
	dim := color.New(color.Faint)
	if !opts.Color {
		head.DisableColor()
		kind.DisableColor()
		dim.DisableColor()
	}

	if _, err := head.Fprintf(w, "module %s\n", env.ModuleName); err != nil {
		return err
	}
	if _, err := dim.Fprintf(w, "  schema %d, tool %s, %d strings\n",
		env.Schema, env.ToolVersion, len(env.Strings)); err != nil {
		return err
	}

	for _, c := range env.Classes {
		if err := prettyClass(w, env, c, 0, kind, dim); err != nil {
			return err
		}
	}
	for _, f := range env.Functions {
		if err := prettyFunction(w, env, f, 0, kind); err != nil {
			return err
		}
	}
	for _, p := range env.Properties {
		if err := prettyProperty(w, env, p, 0, kind); err != nil {
			return err
		}
	}
	return nil
}

func prettyClass(w io.Writer, env *metadata.ModuleEnvelope, c *metadata.ClassRecord, depth int, kind, dim *color.Color) error {
	pad := indent(depth)
	if _, err := kind.Fprintf(w, "%sclass ", pad); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s %s\n", cell(lookup(env, c.Name)), describeFlags(c.Flags)); err != nil {
		return err
	}
	for _, e := range c.EnumEntries {
		if _, err := fmt.Fprintf(w, "%s  entry %s\n", pad, lookup(env, e)); err != nil {
			return err
		}
	}
	for _, k := range c.Constructors {
		if _, err := fmt.Fprintf(w, "%s  constructor/%d %s\n", pad, len(k.ValueParams), describeFlags(k.Flags)); err != nil {
			return err
		}
	}
	for _, f := range c.Functions {
		if err := prettyFunction(w, env, f, depth+1, kind); err != nil {
			return err
		}
	}
	for _, p := range c.Properties {
		if err := prettyProperty(w, env, p, depth+1, kind); err != nil {
			return err
		}
	}
	for _, n := range c.NestedClasses {
		if err := prettyClass(w, env, n, depth+1, kind, dim); err != nil {
			return err
		}
	}
	if len(c.TypeTable) > 0 {
		if _, err := dim.Fprintf(w, "%s  %d type table entries, %d version requirements\n",
			pad, len(c.TypeTable), len(c.VersionRequirementTable)); err != nil {
			return err
		}
	}
	return nil
}

func prettyFunction(w io.Writer, env *metadata.ModuleEnvelope, f *metadata.FunctionRecord, depth int, kind *color.Color) error {
	if _, err := kind.Fprintf(w, "%sfunc ", indent(depth)); err != nil {
		return err
	}
	extra := describeFlags(f.Flags)
	if len(f.Ir) > 0 {
		extra += " +ir"
	}
	if len(f.VersionRequirements) > 0 {
		extra += fmt.Sprintf(" requires[%d]", len(f.VersionRequirements))
	}
	_, err := fmt.Fprintf(w, "%s/%d %s\n", cell(lookup(env, f.Name)), len(f.ValueParams), extra)
	return err
}

func prettyProperty(w io.Writer, env *metadata.ModuleEnvelope, p *metadata.PropertyRecord, depth int, kind *color.Color) error {
	if _, err := kind.Fprintf(w, "%sprop ", indent(depth)); err != nil {
		return err
	}
	extra := describeFlags(p.Flags)
	if len(p.GetterIr) > 0 {
		extra += " +getter-ir"
	}
	if len(p.SetterIr) > 0 {
		extra += " +setter-ir"
	}
	_, err := fmt.Fprintf(w, "%s %s\n", cell(lookup(env, p.Name)), extra)
	return err
}

func describeFlags(flags uint32) string {
	out := metadata.FlagsVisibility(flags).String() + " " + metadata.FlagsModality(flags).String()
	if metadata.FlagsSuspend(flags) {
		out += " suspend"
	}
	if metadata.FlagsInline(flags) {
		out += " inline"
	}
	if metadata.FlagsSynthesized(flags) {
		out += " synthesized"
	}
	return out
}

func lookup(env *metadata.ModuleEnvelope, idx uint32) string {
	if int(idx) >= len(env.Strings) {
		return fmt.Sprintf("<bad string %d>", idx)
	}
	return env.Strings[idx]
}

// cell pads a name to the shared column width so flags line up.
func cell(s string) string {
	return runewidth.FillRight(s, nameColumn)
}

func indent(depth int) string {
	return runewidth.FillRight("", depth*2)
}

// JSON writes the envelope as indented JSON.
func JSON(w io.Writer, env *metadata.ModuleEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}
