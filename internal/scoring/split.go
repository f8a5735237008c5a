package scoring

import "math"

// SplitShares allocates responsibility percentages from the two story
// lengths. The pair always sums to exactly 100; two empty stories split
// evenly rather than blaming either side.
func SplitShares(lenA, lenB int) (int, int) {
	if lenA < 0 {
		lenA = 0
	}
	if lenB < 0 {
		lenB = 0
	}
	total := lenA + lenB
	if total == 0 {
		return 50, 50
	}
	shareA := int(math.Round(float64(lenA) * 100 / float64(total)))
	return shareA, 100 - shareA
}
