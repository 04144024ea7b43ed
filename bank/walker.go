package bank

import "github.com/synnergy-labs/resourcevm/core"

// TypeWalker is C4: given a loaded type, it discovers whether the type IS
// a balance or CONTAINS balances, recording a field-index path to each
// (spec.md §4.4). It is purely structural and terminates because the
// loader guarantees acyclic type definitions for the currency family.
type TypeWalker struct {
	loader core.Loader
}

// NewTypeWalker builds a walker bound to loader for the lifetime of one
// bank session.
func NewTypeWalker(loader core.Loader) *TypeWalker {
	return &TypeWalker{loader: loader}
}

// FindBalance computes the handler for tag/tp: Unlocked if tag itself is a
// balance, Locked if the walk finds nested balance fields, nil if neither
// (spec.md §4.3 "Handler construction").
func (w *TypeWalker) FindBalance(tag core.StructTag, tp core.Type) (*Handler, error) {
	if IsBalance(tag) {
		return &Handler{Unlocked: true, Ticker: Ticker(tag)}, nil
	}
	paths, err := w.findInType(tp, tag.TypeParams)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}
	return &Handler{Locked: paths}, nil
}

func (w *TypeWalker) findInType(tp core.Type, tpTags []core.TypeTag) ([]FieldBalance, error) {
	switch tp.Kind {
	case core.KindVector:
		// Transparent: the resolver walks vector containers dynamically,
		// so a vector never contributes a path segment of its own.
		return w.findInType(*tp.Elem, tpTags)

	case core.KindStruct:
		def, err := w.loader.StructAt(tp.StructIdx)
		if err != nil {
			return nil, core.NewVMError(core.StatusLinkerError, "struct definition not found during balance walk")
		}
		return w.walkFields(def.Fields, tpTags)

	case core.KindStructInstantiation:
		def, err := w.loader.StructAt(tp.StructIdx)
		if err != nil {
			return nil, core.NewVMError(core.StatusLinkerError, "struct definition not found during balance walk")
		}
		if isCoinStruct(def) && len(tp.TyArgs) == 1 {
			ticker := w.tickerFromType(tp.TyArgs[0], tpTags)
			return []FieldBalance{{Ticker: ticker, Path: []int{0}}}, nil
		}
		// Outer type-parameter tags are threaded through unchanged when
		// crossing into the instantiation's fields; they describe the
		// enclosing resource's generics, which is what a nested TyParam
		// field must resolve against.
		return w.walkFields(def.Fields, tpTags)

	case core.KindTyParam:
		if tp.ParamIdx < 0 || tp.ParamIdx >= len(tpTags) {
			return nil, nil
		}
		outer := tpTags[tp.ParamIdx]
		if outer.Kind != core.TypeTagStruct {
			return nil, nil
		}
		idx, ok := w.loader.StructTagToIndex(*outer.Struct)
		if !ok {
			return nil, nil
		}
		return w.findInType(core.Type{Kind: core.KindStruct, StructIdx: idx}, outer.Struct.TypeParams)

	default:
		// Primitives and references yield nothing.
		return nil, nil
	}
}

func (w *TypeWalker) walkFields(fields []core.Type, tpTags []core.TypeTag) ([]FieldBalance, error) {
	var res []FieldBalance
	for i, field := range fields {
		sub, err := w.findInType(field, tpTags)
		if err != nil {
			return nil, err
		}
		for _, fb := range sub {
			res = append(res, FieldBalance{Ticker: fb.Ticker, Path: prependIndex(i, fb.Path)})
		}
	}
	return res, nil
}

func prependIndex(i int, path []int) []int {
	out := make([]int, 0, len(path)+1)
	out = append(out, i)
	out = append(out, path...)
	return out
}

// tickerFromType derives a ticker name from a currency type parameter:
// the nested struct's name, or a primitive keyword, with "_" when
// unresolvable (spec.md §4.4 StructInstantiation rule).
func (w *TypeWalker) tickerFromType(t core.Type, tpTags []core.TypeTag) string {
	switch t.Kind {
	case core.KindStruct, core.KindStructInstantiation:
		def, err := w.loader.StructAt(t.StructIdx)
		if err != nil {
			return "_"
		}
		return def.StructName.String()
	case core.KindTyParam:
		if t.ParamIdx < 0 || t.ParamIdx >= len(tpTags) {
			return "_"
		}
		outer := tpTags[t.ParamIdx]
		if outer.Kind == core.TypeTagStruct {
			return outer.Struct.StructName.String()
		}
		return "_"
	case core.KindBool:
		return "bool"
	case core.KindU8:
		return "u8"
	case core.KindU64:
		return "u64"
	case core.KindU128:
		return "u128"
	case core.KindAddress:
		return "address"
	case core.KindSigner:
		return "signer"
	case core.KindVector:
		return "vector"
	case core.KindReference, core.KindMutableReference:
		return "reference"
	default:
		return "_"
	}
}
