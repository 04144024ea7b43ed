package bank

import "github.com/synnergy-labs/resourcevm/core"

// IsBalance reports whether tag is the distinguished Balance<Currency>
// resource type (spec.md §4.3 "Balance recognition"). It is a total,
// structural function of tag alone — no lookup, no loader consultation —
// per invariant 2.
func IsBalance(tag core.StructTag) bool {
	if tag.Address != core.CoreCodeAddress {
		return false
	}
	if tag.ModuleName != core.AccountModuleName || tag.StructName != core.BalanceStructName {
		return false
	}
	if len(tag.TypeParams) != 1 {
		return false
	}
	param := tag.TypeParams[0]
	if param.Kind != core.TypeTagStruct {
		return false
	}
	inner := param.Struct
	return inner.Address == core.CoreCodeAddress && inner.ModuleName == core.CurrencyModuleName
}

// Ticker extracts the currency ticker from a tag already known to satisfy
// IsBalance. Callers must check IsBalance first.
func Ticker(tag core.StructTag) string {
	return tag.TypeParams[0].Struct.StructName.String()
}

// isCoinStruct reports whether a loaded struct definition is the
// well-known currency coin wrapper (spec.md §4.4 StructInstantiation
// rule).
func isCoinStruct(def *core.StructDef) bool {
	return def.Address == core.CoreCodeAddress &&
		def.ModuleName == core.CurrencyModuleName &&
		def.StructName == core.CoinStructName
}
