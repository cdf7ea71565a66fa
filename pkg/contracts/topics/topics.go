package topics

const (
	// Snapshots completos de apostas + resultados
	BetSnapshots = "bet_snapshots"

	// DLQ
	BetSnapshotsDLQ = "bet_snapshots_dlq"
)
