package reconcile

// RoundingPolicy selects how fractional minor units are resolved. One policy
// is chosen per deployment and applied to every report kind; policies are
// never mixed within a run.
type RoundingPolicy string

const (
	RoundHalfUp   RoundingPolicy = "half-up"
	RoundFloor    RoundingPolicy = "floor"
	RoundHalfEven RoundingPolicy = "half-even"
)

// ParseRoundingPolicy validates a policy name. Empty input selects half-up.
func ParseRoundingPolicy(value string) (RoundingPolicy, error) {
	switch RoundingPolicy(value) {
	case "":
		return RoundHalfUp, nil
	case RoundHalfUp, RoundFloor, RoundHalfEven:
		return RoundingPolicy(value), nil
	default:
		return "", ErrUnknownRoundingPolicy
	}
}

// TaxRatePercent is the flat consumption tax rate.
const TaxRatePercent = 10

// TaxNormalizer converts between tax-exclusive and tax-inclusive amounts in
// integer minor units. It is pure: stored amounts are never mutated, only
// presentation values derived.
type TaxNormalizer struct {
	policy RoundingPolicy
}

// NewTaxNormalizer constructs a normalizer for one rounding policy.
func NewTaxNormalizer(policy RoundingPolicy) (TaxNormalizer, error) {
	parsed, err := ParseRoundingPolicy(string(policy))
	if err != nil {
		return TaxNormalizer{}, err
	}
	return TaxNormalizer{policy: parsed}, nil
}

// Policy returns the active rounding policy.
func (n TaxNormalizer) Policy() RoundingPolicy { return n.policy }

// Tax returns the tax on a net amount.
func (n TaxNormalizer) Tax(net int64) int64 {
	return n.divide(net*TaxRatePercent, 100)
}

// Gross returns the tax-inclusive amount for a net amount.
func (n TaxNormalizer) Gross(net int64) int64 {
	return net + n.Tax(net)
}

// NetFromGross recovers the net amount from a tax-inclusive amount.
func (n TaxNormalizer) NetFromGross(gross int64) int64 {
	return n.divide(gross*100, 100+TaxRatePercent)
}

// divide computes num/den under the active policy. den is always positive.
func (n TaxNormalizer) divide(num, den int64) int64 {
	switch n.policy {
	case RoundFloor:
		return floorDiv(num, den)
	case RoundHalfEven:
		q := floorDiv(num, den)
		rem2 := 2 * (num - q*den)
		if rem2 > den || (rem2 == den && q%2 != 0) {
			q++
		}
		return q
	default: // half-up
		return floorDiv(2*num+den, 2*den)
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
