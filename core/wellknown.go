package core

// Well-known names the bank's balance recognition (spec.md §4.3) and the
// chain-context resolver (spec.md §4.5 step 1) match structurally. Renamed
// from the Diem-lineage system this module's storage/bank design is
// adapted from ("Dfinance"/"T") to names that describe their role.
var (
	AccountModuleName  = MustIdentifier("Account")
	BalanceStructName  = MustIdentifier("Balance")
	CurrencyModuleName = MustIdentifier("Currency")
	CoinStructName     = MustIdentifier("Coin")

	TimestampModuleName = MustIdentifier("Timestamp")
	TimestampStructName = MustIdentifier("CurrentTimeMicroseconds")
	BlockModuleName      = MustIdentifier("Block")
	BlockStructName      = MustIdentifier("BlockMetadata")
)

// TimestampTag and BlockTag are the synthetic chain resources the
// ExecutionContext resolver serves (spec.md §4.5 step 1).
var (
	TimestampTag = StructTag{Address: CoreCodeAddress, ModuleName: TimestampModuleName, StructName: TimestampStructName}
	BlockTag     = StructTag{Address: CoreCodeAddress, ModuleName: BlockModuleName, StructName: BlockStructName}
)
