package testutil

// OpGenConfig tunes the mix of generated operations.
// All rate fields are percentages (0–100); Push takes whatever is left.
//
// Determinism: every decision consumes bytes from the stream, so fuzz
// minimization and fixed seeds remain stable.
type OpGenConfig struct {
	PopRate        int
	PeekRate       int
	PeekOldestRate int
	DrainRate      int
	AllRate        int
	ClearRate      int

	// PriorityRange bounds generated priorities to [0, PriorityRange).
	// Small ranges produce many ties. Default: 8.
	PriorityRange int

	// MaxDrain bounds OpDrain.N. Default: 4.
	MaxDrain int
}

// DefaultOpGenConfig favors pushes so the heap spends most of its time full
// and evicting, with enough pops to punch holes into arrival order.
func DefaultOpGenConfig() OpGenConfig {
	return OpGenConfig{
		PopRate:        25,
		PeekRate:       8,
		PeekOldestRate: 8,
		DrainRate:      3,
		AllRate:        4,
		ClearRate:      1,
		PriorityRange:  8,
		MaxDrain:       4,
	}
}

// OpGenerator decodes operations from a byte stream.
type OpGenerator struct {
	stream *ByteStream
	cfg    OpGenConfig
}

// NewOpGenerator returns a generator over fuzz bytes.
func NewOpGenerator(data []byte, cfg OpGenConfig) *OpGenerator {
	if cfg.PriorityRange <= 0 {
		cfg.PriorityRange = 8
	}

	if cfg.MaxDrain <= 0 {
		cfg.MaxDrain = 4
	}

	return &OpGenerator{stream: NewByteStream(data), cfg: cfg}
}

// HasMore reports whether the stream has bytes left to decode.
func (g *OpGenerator) HasMore() bool {
	return g.stream.HasMore()
}

// Next decodes the next operation.
func (g *OpGenerator) Next() Operation {
	roll := g.stream.NextIntn(100)

	thresholds := []struct {
		rate int
		op   func() Operation
	}{
		{g.cfg.PopRate, func() Operation { return OpPopTop{} }},
		{g.cfg.PeekRate, func() Operation { return OpPeekTop{} }},
		{g.cfg.PeekOldestRate, func() Operation { return OpPeekOldest{} }},
		{g.cfg.DrainRate, func() Operation { return OpDrain{N: g.stream.NextIntn(g.cfg.MaxDrain + 1)} }},
		{g.cfg.AllRate, func() Operation { return OpAll{} }},
		{g.cfg.ClearRate, func() Operation { return OpClear{} }},
	}

	for _, threshold := range thresholds {
		if roll < threshold.rate {
			return threshold.op()
		}

		roll -= threshold.rate
	}

	return OpPush{Priority: uint8(g.stream.NextIntn(g.cfg.PriorityRange))}
}

// Ops decodes every remaining operation, up to limit (0 = no limit).
func (g *OpGenerator) Ops(limit int) []Operation {
	var ops []Operation

	for g.HasMore() && (limit == 0 || len(ops) < limit) {
		ops = append(ops, g.Next())
	}

	return ops
}
