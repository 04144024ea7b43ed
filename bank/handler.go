package bank

import "github.com/synnergy-labs/resourcevm/core"

// FieldBalance is one `(ticker, field_path)` entry a Locked handler walks
// to reach a nested balance (spec.md §3 BalanceHandler).
type FieldBalance struct {
	Ticker string
	Path   []int
}

// Handler is the cached recognition result for a StructTag (spec.md §3
// BalanceHandler, §4.3 "Handler construction"). Exactly one of the two
// shapes applies, selected by Unlocked.
type Handler struct {
	Unlocked bool
	Ticker   string         // populated iff Unlocked
	Locked   []FieldBalance // populated iff !Unlocked
}

// Balance is one extracted amount, tagged with whether it came from the
// Unlocked or Locked shape (spec.md glossary "Locked balance").
type Balance struct {
	Ticker string
	Amount core.U128
	Locked bool
}

// ResolveBalance walks val according to h, extracting every balance it
// names (spec.md §4.3 "Handle on write/delete").
func (h *Handler) ResolveBalance(val core.Value) ([]Balance, error) {
	if h.Unlocked {
		amounts, err := loadValue([]int{0, 0}, val)
		if err != nil {
			return nil, err
		}
		out := make([]Balance, len(amounts))
		for i, a := range amounts {
			out[i] = Balance{Ticker: h.Ticker, Amount: a, Locked: false}
		}
		return out, nil
	}

	var out []Balance
	for _, fb := range h.Locked {
		amounts, err := loadValue(fb.Path, val)
		if err != nil {
			return nil, err
		}
		for _, a := range amounts {
			out = append(out, Balance{Ticker: fb.Ticker, Amount: a, Locked: true})
		}
	}
	return out, nil
}

// loadValue walks val along path, collecting every U128 leaf reached.
// Struct/vector walking rules (spec.md §4.4, mirrored at the value level
// rather than the type level since this runs at write/delete time against
// concrete values):
//   - a U128 leaf requires an empty path, else it's a shape mismatch;
//   - a struct container consumes the path head as a field index and
//     recurses into that field with the remaining path;
//   - a vector container does NOT consume a path element — it recurses
//     into every element with the same path and flattens the results,
//     mirroring how the type walker treats Vector(inner) as transparent.
func loadValue(path []int, val core.Value) ([]core.U128, error) {
	switch val.Kind {
	case core.ValU128:
		if len(path) != 0 {
			return nil, typeErr()
		}
		return []core.U128{val.U128}, nil
	case core.ValStruct:
		if len(path) == 0 {
			return nil, typeErr()
		}
		idx := path[0]
		if idx < 0 || idx >= len(val.Fields) {
			return nil, typeErr()
		}
		return loadValue(path[1:], val.Fields[idx])
	case core.ValVector:
		var out []core.U128
		for _, elem := range val.Elems {
			amounts, err := loadValue(path, elem)
			if err != nil {
				return nil, err
			}
			out = append(out, amounts...)
		}
		return out, nil
	default:
		return nil, typeErr()
	}
}

func typeErr() error {
	return core.NewVMError(core.StatusInternalTypeError, "value shape inconsistent with cached balance field path")
}
