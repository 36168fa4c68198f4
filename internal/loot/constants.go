package loot

// Distribution kinds as written in loot table files
const (
	KindUniform = "uniform"
	KindNormal  = "normal"
)

// Normal sampling bounds
const (
	// MaxNormalAttempts caps rejection sampling for degenerate parameters
	MaxNormalAttempts = 10000

	MinQuality float32 = 1e-6
	MaxQuality float32 = 1 - 1e-6
)

// Error messages
const (
	ErrMsgInvalidTable        = "invalid loot table"
	ErrMsgEmptyTable          = "table has no entries"
	ErrMsgZeroTotalWeight     = "total weight must be positive"
	ErrMsgInvalidWeight       = "weight must be finite and non-negative"
	ErrMsgInvalidStdDev       = "std_dev must be finite and non-negative"
	ErrMsgInvalidMean         = "mean must be finite"
	ErrMsgUnknownDistribution = "unknown quality distribution"
	ErrMsgNilSubtable         = "subtable has no table"
)
