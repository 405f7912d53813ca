package cli

// Indirection layer to allow stubbing in tests

var (
	fnRunBatch        = runBatch
	fnListCheckpoints = listCheckpoints
	fnInspectDataset  = inspectDataset
)
