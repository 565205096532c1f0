package engine

import "fmt"

// CutStatistics collects counts for each pruning/cutoff mechanism.
type CutStatistics struct {
	TTCutoffs        uint64
	NullMoveCutoffs  uint64
	RFPCutoffs       uint64
	LateMovePrunes   uint64
	BetaCutoffs      uint64
	QStandPatCutoffs uint64
	QBetaCutoffs     uint64
}

func (cs *CutStatistics) reset() { *cs = CutStatistics{} }

func (cs *CutStatistics) dump() {
	fmt.Println("info string Cut statistics:")
	fmt.Printf("info string   TT cutoffs: %d\n", cs.TTCutoffs)
	fmt.Printf("info string   Null-move cutoffs: %d\n", cs.NullMoveCutoffs)
	fmt.Printf("info string   Reverse futility cutoffs: %d\n", cs.RFPCutoffs)
	fmt.Printf("info string   Late move prunes: %d\n", cs.LateMovePrunes)
	fmt.Printf("info string   Beta cutoffs: %d\n", cs.BetaCutoffs)
	fmt.Printf("info string   QStandPat cutoffs: %d\n", cs.QStandPatCutoffs)
	fmt.Printf("info string   QBeta cutoffs: %d\n", cs.QBetaCutoffs)
}
