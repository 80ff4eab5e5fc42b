package taxrule

import "github.com/shopspring/decimal"

// ComputePaye runs the progressive marginal-rate computation over the
// bracket table: each band taxes the slice of income falling inside it at
// that band's rate. The table is validated before use so a malformed
// configuration fails loudly instead of producing a wrong withholding.
func ComputePaye(income decimal.Decimal, brackets []PayeBracket) (decimal.Decimal, error) {
	if err := ValidateBrackets(brackets); err != nil {
		return decimal.Decimal{}, err
	}

	tax := decimal.Zero
	for _, b := range brackets {
		if !income.GreaterThan(b.Min) {
			break
		}
		upper := income
		if b.Max != nil && b.Max.LessThan(income) {
			upper = *b.Max
		}
		tax = tax.Add(upper.Sub(b.Min).Mul(b.Rate))
	}
	return tax, nil
}
