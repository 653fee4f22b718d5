package engine

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/casework/pkg/fixture"
	"github.com/chazu/casework/pkg/fixture/panel"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms Casework Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: hinge-cabinet -> hinge_cabinet
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpFixture wraps a constructed fixture so later forms can reference it.
type sexpFixture struct {
	f *fixture.Fixture
}

func (s *sexpFixture) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(fixture %q %s)", s.f.Name(), s.f.Variant())
}
func (s *sexpFixture) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps an r3.Vec.
type sexpVec3 struct {
	vec r3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.3f %.3f %.3f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpInterior wraps a box interior destined for a housing cabinet.
type sexpInterior struct {
	obj *fixture.BoxInterior
}

func (s *sexpInterior) SexpString(ps *zygo.PrintState) string {
	sz := s.obj.Size()
	return fmt.Sprintf("(interior-box %q %.3fx%.3fx%.3f)", s.obj.Name(), sz.X, sz.Y, sz.Z)
}
func (s *sexpInterior) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a bool from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_left) and plain strings ("left").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toVec3 extracts an r3.Vec from a sexpVec3.
func toVec3(s zygo.Sexp) (r3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return r3.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// ---------------------------------------------------------------------------
// Spec assembly from keyword arguments
// ---------------------------------------------------------------------------

// specFromArgs fills the keyword arguments shared by every cabinet form
// into a fixture spec. Variant-specific keywords are read by the callers.
func specFromArgs(form, name string, pa kwArgs) (fixture.Spec, error) {
	spec := fixture.Spec{Name: name}

	if v, ok := pa.kw["size"]; ok {
		vec, err := toVec3(v)
		if err != nil {
			return spec, fmt.Errorf("%s: size: %w", form, err)
		}
		spec.Size = vec
	}
	if v, ok := pa.kw["thickness"]; ok {
		f, err := toFloat64(v)
		if err != nil {
			return spec, fmt.Errorf("%s: thickness: %w", form, err)
		}
		spec.Thickness = f
	}
	if v, ok := pa.kw["door-gap"]; ok {
		f, err := toFloat64(v)
		if err != nil {
			return spec, fmt.Errorf("%s: door-gap: %w", form, err)
		}
		spec.DoorGap = f
	}
	if v, ok := pa.kw["panel-style"]; ok {
		s, err := toKeywordString(v)
		if err != nil {
			return spec, fmt.Errorf("%s: panel-style: %w", form, err)
		}
		// Keyword styles keep their hyphens (:divided-window); the
		// canonical names use underscores.
		style, err := panel.ParseStyle(strings.ReplaceAll(s, "-", "_"))
		if err != nil {
			return spec, fmt.Errorf("%s: panel-style: %w", form, err)
		}
		spec.PanelStyle = style
	}
	if v, ok := pa.kw["handle-style"]; ok {
		s, err := toKeywordString(v)
		if err != nil {
			return spec, fmt.Errorf("%s: handle-style: %w", form, err)
		}
		spec.HandleStyle = panel.HandleStyle(s)
	}
	if v, ok := pa.kw["handle-vpos"]; ok {
		s, err := toKeywordString(v)
		if err != nil {
			return spec, fmt.Errorf("%s: handle-vpos: %w", form, err)
		}
		spec.HandleVPos = panel.VPos(s)
	}
	if v, ok := pa.kw["handle-config"]; ok {
		cfg, err := handleConfig(v)
		if err != nil {
			return spec, fmt.Errorf("%s: handle-config: %w", form, err)
		}
		spec.HandleConfig = cfg
	}
	if v, ok := pa.kw["open-top"]; ok {
		b, err := toBool(v)
		if err != nil {
			return spec, fmt.Errorf("%s: open-top: %w", form, err)
		}
		spec.OpenTop = b
	}
	if v, ok := pa.kw["texture"]; ok {
		s, err := toString(v)
		if err != nil {
			return spec, fmt.Errorf("%s: texture: %w", form, err)
		}
		spec.Texture = s
	}

	return spec, nil
}

// handleConfig parses (list :length 0.25 :standoff 0.03) into a map.
func handleConfig(s zygo.Sexp) (map[string]float64, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	pa := parseArgs(items)
	if len(pa.positional) != 0 {
		return nil, fmt.Errorf("expected keyword/value pairs")
	}
	cfg := make(map[string]float64, len(pa.kw))
	for k, v := range pa.kw {
		f, err := toFloat64(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		cfg[k] = f
	}
	return cfg, nil
}

// finishFixture constructs the fixture, applies the common :at position,
// and registers it with the build.
func finishFixture(form string, variant fixture.Variant, spec fixture.Spec, pa kwArgs, b *Build) (zygo.Sexp, error) {
	f, err := fixture.New(variant, spec)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("%s: %w", form, err)
	}
	if v, ok := pa.kw["at"]; ok {
		pos, err := toVec3(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: at: %w", form, err)
		}
		f.SetPos(pos)
	}
	if err := b.Add(f); err != nil {
		return zygo.SexpNull, fmt.Errorf("%s: %w", form, err)
	}
	return &sexpFixture{f: f}, nil
}

// positionalName extracts the required leading name argument.
func positionalName(form string, args []zygo.Sexp) (string, kwArgs, error) {
	pa := parseArgs(args)
	if len(pa.positional) < 1 {
		return "", pa, fmt.Errorf("%s requires a name as first argument", form)
	}
	name, err := toString(pa.positional[0])
	if err != nil {
		return "", pa, fmt.Errorf("%s: name: %w", form, err)
	}
	return name, pa, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs all Casework DSL builtins into a zygomys
// environment. The builtins construct fixtures into the provided build.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens are converted to recognizable string literals and
// kebab-case form names match their registered underscore names.
func registerBuiltins(env *zygo.Zlisp, b *Build) {

	// -----------------------------------------------------------------------
	// (vec3 0.6 0.4 0.8)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}
		return &sexpVec3{vec: r3.Vec{X: x, Y: y, Z: z}}, nil
	})

	// -----------------------------------------------------------------------
	// (single-cabinet "cab" :size (vec3 0.6 0.4 0.8) :orientation :right
	//                 :panel-style :shaker :handle-style :bar)
	// -----------------------------------------------------------------------
	env.AddFunction("single_cabinet", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		fname, pa, err := positionalName("single-cabinet", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		spec, err := specFromArgs("single-cabinet", fname, pa)
		if err != nil {
			return zygo.SexpNull, err
		}
		if v, ok := pa.kw["orientation"]; ok {
			s, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("single-cabinet: orientation: %w", err)
			}
			spec.Orientation = fixture.Orientation(s)
		}
		return finishFixture("single-cabinet", fixture.VariantSingle, spec, pa, b)
	})

	// -----------------------------------------------------------------------
	// (hinge-cabinet "cab" :size (vec3 0.9 0.4 0.8))
	// -----------------------------------------------------------------------
	env.AddFunction("hinge_cabinet", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		fname, pa, err := positionalName("hinge-cabinet", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		spec, err := specFromArgs("hinge-cabinet", fname, pa)
		if err != nil {
			return zygo.SexpNull, err
		}
		return finishFixture("hinge-cabinet", fixture.VariantHinge, spec, pa, b)
	})

	// -----------------------------------------------------------------------
	// (shelves "rack" :size (vec3 0.8 0.3 1.8) :shelves 4)
	// -----------------------------------------------------------------------
	env.AddFunction("shelves", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		fname, pa, err := positionalName("shelves", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		spec, err := specFromArgs("shelves", fname, pa)
		if err != nil {
			return zygo.SexpNull, err
		}
		if v, ok := pa.kw["shelves"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("shelves: shelves: %w", err)
			}
			spec.NumShelves = n
		}
		return finishFixture("shelves", fixture.VariantOpen, spec, pa, b)
	})

	// -----------------------------------------------------------------------
	// (drawer "dwr" :size (vec3 0.5 0.5 0.3))
	// -----------------------------------------------------------------------
	env.AddFunction("drawer", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		fname, pa, err := positionalName("drawer", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		spec, err := specFromArgs("drawer", fname, pa)
		if err != nil {
			return zygo.SexpNull, err
		}
		return finishFixture("drawer", fixture.VariantDrawer, spec, pa, b)
	})

	// -----------------------------------------------------------------------
	// (panel-cabinet "blind" :size (vec3 0.6 0.02 0.8) :solid-body true)
	// -----------------------------------------------------------------------
	env.AddFunction("panel_cabinet", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		fname, pa, err := positionalName("panel-cabinet", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		spec, err := specFromArgs("panel-cabinet", fname, pa)
		if err != nil {
			return zygo.SexpNull, err
		}
		if v, ok := pa.kw["solid-body"]; ok {
			sb, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("panel-cabinet: solid-body: %w", err)
			}
			spec.SolidBody = sb
		}
		return finishFixture("panel-cabinet", fixture.VariantPanel, spec, pa, b)
	})

	// -----------------------------------------------------------------------
	// (interior-box "oven" (vec3 0.6 0.55 0.5))
	// -----------------------------------------------------------------------
	env.AddFunction("interior_box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("interior-box requires a name and a size vec3")
		}
		iname, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("interior-box: name: %w", err)
		}
		size, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("interior-box: size: %w", err)
		}
		return &sexpInterior{obj: fixture.NewBoxInterior(iname, size)}, nil
	})

	// -----------------------------------------------------------------------
	// (housing-cabinet "shell" :interior (interior-box ...)
	//                  :width 0.7 :height 0.6
	//                  :pad-front -0.02 :pad-back 0.05
	//                  :pad-bottom 0.04 :pad-top 0.04)
	//
	// Per axis either the full extent (:width/:depth/:height) or both
	// paddings must be given; whichever is omitted is derived from the
	// interior size.
	// -----------------------------------------------------------------------
	env.AddFunction("housing_cabinet", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		fname, pa, err := positionalName("housing-cabinet", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		spec, err := specFromArgs("housing-cabinet", fname, pa)
		if err != nil {
			return zygo.SexpNull, err
		}

		iv, ok := pa.kw["interior"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("housing-cabinet: interior is required")
		}
		in, ok := iv.(*sexpInterior)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("housing-cabinet: interior: expected interior-box, got %T", iv)
		}
		spec.Interior = in.obj

		axisKeys := [3]string{"width", "depth", "height"}
		padKeys := [3][2]string{
			{"pad-left", "pad-right"},
			{"pad-front", "pad-back"},
			{"pad-bottom", "pad-top"},
		}
		for d := 0; d < 3; d++ {
			if v, ok := pa.kw[axisKeys[d]]; ok {
				f, err := toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("housing-cabinet: %s: %w", axisKeys[d], err)
				}
				spec.SizeOpt[d] = &f
			}
			for side := 0; side < 2; side++ {
				if v, ok := pa.kw[padKeys[d][side]]; ok {
					f, err := toFloat64(v)
					if err != nil {
						return zygo.SexpNull, fmt.Errorf("housing-cabinet: %s: %w", padKeys[d][side], err)
					}
					spec.Padding[d][side] = &f
				}
			}
		}

		return finishFixture("housing-cabinet", fixture.VariantHousing, spec, pa, b)
	})
}
