package scenefile

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gatgui/pyexpr/internal/scene"
	"github.com/gatgui/pyexpr/node"
	"github.com/gatgui/pyexpr/platform/attribute"
	"github.com/gatgui/pyexpr/platform/script/loader"
	"github.com/gatgui/pyexpr/platform/types"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/spf13/afero"
)

var (
	ErrInvalidScene = errors.New("invalid scene file")
	ErrUnknownType  = errors.New("unknown attribute type")
)

// Load reads and decodes the scene file at path on fs.
func Load(fs afero.Fs, path string) (*File, error) {
	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	return Parse(fs, path, src)
}

// Parse decodes src as the content of the scene file at path. Expression
// files are resolved relative to path on fs.
func Parse(fs afero.Fs, path string, src []byte) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, diags)
	}

	f := &File{path: path}
	if diags := gohcl.DecodeBody(hclFile.Body, nil, f); diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, diags)
	}

	if err := f.resolve(fs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	return f, nil
}

// resolve parses units and output types, loads expression files and
// decodes attribute values.
func (f *File) resolve(fs afero.Fs) error {
	units, err := f.Units.parse()
	if err != nil {
		return err
	}
	f.units = units

	seen := make(map[string]bool)
	for _, obj := range f.Objects {
		if seen[obj.Name] {
			return fmt.Errorf("duplicate name %q", obj.Name)
		}
		seen[obj.Name] = true
	}

	for _, n := range f.Nodes {
		if seen[n.Name] {
			return fmt.Errorf("duplicate name %q", n.Name)
		}
		seen[n.Name] = true

		if err := n.resolve(fs, filepath.Dir(f.path)); err != nil {
			return fmt.Errorf("pyexpr %q: %w", n.Name, err)
		}
	}
	return nil
}

func (u *Units) parse() (attribute.DisplayUnits, error) {
	units := attribute.DefaultUnits()
	if u == nil {
		return units, nil
	}

	var errs []error
	var err error
	if u.Angle != "" {
		units.Angle, err = attribute.ParseAngleUnit(u.Angle)
		errs = append(errs, err)
	}
	if u.Distance != "" {
		units.Distance, err = attribute.ParseDistanceUnit(u.Distance)
		errs = append(errs, err)
	}
	if u.Time != "" {
		units.Time, err = attribute.ParseTimeUnit(u.Time)
		errs = append(errs, err)
	}
	return units, errors.Join(errs...)
}

func (n *Node) resolve(fs afero.Fs, dir string) error {
	switch {
	case n.Expression != nil && n.ExpressionFile != nil:
		return fmt.Errorf("expression and expression_file are mutually exclusive")
	case n.Expression != nil:
		n.expression = *n.Expression
	case n.ExpressionFile != nil:
		path := *n.ExpressionFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		l, err := loader.NewFromFile(fs, path)
		if err != nil {
			return err
		}
		if n.expression, err = loader.ReadAll(l); err != nil {
			return err
		}
	}

	n.outputType = types.String
	if n.OutputType != "" {
		t, err := types.ParseOutputType(n.OutputType)
		if err != nil {
			return err
		}
		n.outputType = t
	}

	names := make(map[string]bool)
	for _, a := range n.Attributes {
		if names[a.Name] {
			return fmt.Errorf("duplicate attribute %q", a.Name)
		}
		names[a.Name] = true

		decoded, err := decodeAttribute(a)
		if err != nil {
			return fmt.Errorf("attribute %q: %w", a.Name, err)
		}
		a.decoded = decoded
	}
	return nil
}

// Apply populates s with the contents of the file. Objects are created
// first, then expression nodes and their attributes; connections and
// time-change subscriptions are made once every node exists.
func (f *File) Apply(ctx context.Context, s *scene.Scene) error {
	if f.Units != nil {
		s.SetUnits(f.units)
	}

	for _, obj := range f.Objects {
		if err := s.AddObject(obj.Name, obj.Parent, obj.Hierarchical); err != nil {
			return fmt.Errorf("object %q: %w", obj.Name, err)
		}
	}

	for _, n := range f.Nodes {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := s.AddExprNode(n.Name,
			node.WithExpression(n.expression),
			node.WithOutputType(n.outputType),
			node.WithVerbose(n.Verbose),
		)
		if err != nil {
			return fmt.Errorf("pyexpr %q: %w", n.Name, err)
		}
		for _, a := range n.Attributes {
			if err := s.AddAttribute(n.Name, a.decoded); err != nil {
				return fmt.Errorf("pyexpr %q: %w", n.Name, err)
			}
		}
	}

	for _, n := range f.Nodes {
		for _, a := range n.Attributes {
			for _, src := range a.Connect {
				if err := s.Connect(src, n.Name, a.Name); err != nil {
					return fmt.Errorf("pyexpr %q: %w", n.Name, err)
				}
			}
		}
		if n.EvalOnTimeChanged {
			if err := s.SetEvalOnTimeChanged(n.Name, true); err != nil {
				return fmt.Errorf("pyexpr %q: %w", n.Name, err)
			}
		}
	}
	return nil
}
