package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Returns are deterministic; the monthly rate is the annual rate divided by 12",
	"Cash above the buffer is swept into investments each month",
	"Lump sums land in cash and are swept the following month",
	"Debt is held constant (no amortization or interest)",
	"No taxes, no inflation adjustment",
}
