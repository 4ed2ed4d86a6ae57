package ceremony

// Size fixes the number of powers of a sub-ceremony.
type Size struct {
	NumG1Powers int
	NumG2Powers int
}

// Sizes lists the four sub-ceremonies, one per blob size. The G2 side always
// carries 65 powers, enough for a degree check on the largest proof batch.
var Sizes = []Size{
	{NumG1Powers: 4096, NumG2Powers: 65},
	{NumG1Powers: 8192, NumG2Powers: 65},
	{NumG1Powers: 16384, NumG2Powers: 65},
	{NumG1Powers: 32768, NumG2Powers: 65},
}
