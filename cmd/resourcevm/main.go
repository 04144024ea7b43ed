// Command resourcevm is a local sandbox around the vm package, wiring
// hostmem's reference adapters together the way a real host wires in its
// own byte store, event sink, and bank ledger (spec.md §6). Grounded on the
// teacher's cmd/synnergy/main.go command-tree shape.
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/synnergy-labs/resourcevm/core"
	"github.com/synnergy-labs/resourcevm/hostmem"
	"github.com/synnergy-labs/resourcevm/vm"
	"go.uber.org/zap"
)

func main() {
	log := logrus.New()

	// zap backs the one-shot startup line; logrus carries the
	// per-command structured fields, mirroring the teacher's core/storage.go
	// split between zap.L().Sugar() and logrus for different call sites.
	zl, err := zap.NewProduction()
	if err != nil {
		log.WithError(err).Fatal("resourcevm: building zap logger")
	}
	defer zl.Sync()
	zl.Sugar().Info("resourcevm starting")

	rootCmd := &cobra.Command{Use: "resourcevm"}
	rootCmd.AddCommand(publishCmd(log))
	rootCmd.AddCommand(runCmd(log))
	rootCmd.AddCommand(balanceCmd(log))
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("resourcevm: command failed")
		os.Exit(1)
	}
}

// walPath is shared by publish and run so consecutive invocations observe
// the same WAL-backed store; balance does not open the store.
var walPath string

func addWALFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&walPath, "wal", "resourcevm.wal", "path to the WAL-backed byte store")
}

func openStore(log *logrus.Logger) (*hostmem.WALStore, error) {
	store, err := hostmem.OpenWALStore(walPath)
	if err != nil {
		return nil, err
	}
	if blob, err := store.Get(core.GasScheduleAccessPath.Key()); err == nil && blob == nil {
		log.Info("resourcevm: seeding default gas schedule")
		if err := store.SeedGasSchedule(core.DefaultCostTable()); err != nil {
			return nil, fmt.Errorf("seed gas schedule: %w", err)
		}
	}
	return store, nil
}

func publishCmd(log *logrus.Logger) *cobra.Command {
	var sender, blobPath string
	var maxGas uint64
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "publish a module blob under a sender address",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(log)
			if err != nil {
				return err
			}
			defer store.Close()

			blob, err := os.ReadFile(blobPath)
			if err != nil {
				return fmt.Errorf("reading blob: %w", err)
			}
			addr, err := parseAddress(sender)
			if err != nil {
				return err
			}

			machine, err := buildVm(store, log)
			if err != nil {
				return err
			}
			res := machine.PublishModule(core.Gas{MaxGasAmount: maxGas}, vm.ModuleTx{Blob: blob, Sender: addr})
			return printResult(res)
		},
	}
	addWALFlag(cmd)
	cmd.Flags().StringVar(&sender, "sender", "", "0x-prefixed sender address")
	cmd.Flags().StringVar(&blobPath, "blob", "", "path to the module blob")
	cmd.Flags().Uint64Var(&maxGas, "max-gas", 1_000_000, "gas budget for this call")
	return cmd
}

func runCmd(log *logrus.Logger) *cobra.Command {
	var blobPath string
	var maxGas, timestamp, blockHeight uint64
	cmd := &cobra.Command{
		Use:   "run",
		Short: "execute a script blob",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(log)
			if err != nil {
				return err
			}
			defer store.Close()

			blob, err := os.ReadFile(blobPath)
			if err != nil {
				return fmt.Errorf("reading blob: %w", err)
			}

			machine, err := buildVm(store, log)
			if err != nil {
				return err
			}
			tx := vm.ScriptTx{Blob: blob, TxInfo: &vm.TxInfo{Timestamp: timestamp, BlockHeight: blockHeight}}
			res := machine.ExecuteScript(core.Gas{MaxGasAmount: maxGas}, tx)
			return printResult(res)
		},
	}
	addWALFlag(cmd)
	cmd.Flags().StringVar(&blobPath, "blob", "", "path to the script blob")
	cmd.Flags().Uint64Var(&maxGas, "max-gas", 1_000_000, "gas budget for this call")
	cmd.Flags().Uint64Var(&timestamp, "timestamp", 0, "synthetic chain timestamp")
	cmd.Flags().Uint64Var(&blockHeight, "block-height", 0, "synthetic chain block height")
	return cmd
}

func balanceCmd(log *logrus.Logger) *cobra.Command {
	var ticker, addrStr string
	var amount uint64
	var lockable bool
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "seed a ledger balance in the in-memory bank (debugging aid)",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseAddress(addrStr)
			if err != nil {
				return err
			}
			ledger := hostmem.NewLedger()
			ledger.Seed(ticker, addr, core.U128FromUint64(amount), lockable)
			fmt.Printf("seeded %s balance %d for %s (lockable=%v)\n", ticker, amount, addr, lockable)
			return nil
		},
	}
	cmd.Flags().StringVar(&ticker, "ticker", "USD", "currency ticker")
	cmd.Flags().StringVar(&addrStr, "address", "", "0x-prefixed address")
	cmd.Flags().Uint64Var(&amount, "amount", 0, "balance amount")
	cmd.Flags().BoolVar(&lockable, "lockable", true, "whether the account accepts locked collateral")
	return cmd
}

func buildVm(store *hostmem.WALStore, log *logrus.Logger) (*vm.Vm, error) {
	events := hostmem.NewEventLog()
	ledger := hostmem.NewLedger()
	loader := hostmem.NewStaticLoader()
	interpreter := hostmem.NewStubInterpreter()
	return vm.New(store, events, ledger, interpreter, loader, log)
}

func parseAddress(s string) (core.Address, error) {
	if len(s) >= 2 && s[0:2] == "0x" {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return core.Address{}, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return core.AddressFromBytes(b)
}

func printResult(res vm.VmResult) error {
	enc, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(enc))
	return nil
}
