package dice

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Upper bounds on a single expression. Rolling is linear in Count and runs
// outside any script instruction budget.
const (
	MaxDice  = 100
	MaxSides = 1000
)

// Expression is a parsed dice expression such as "2d6+3" or "4d6kh3".
// 1 <= Count <= MaxDice and 2 <= Sides <= MaxSides after a successful Parse.
type Expression struct {
	Raw         string
	Count       int
	Sides       int
	Modifier    int
	KeepHighest int // keep only the N highest dice when > 0
}

// Parse parses a dice expression string into an Expression.
// Supported forms: "d20", "2d6", "2d6+3", "4d8-2", "4d6kh3", "4d6kh3+1".
//
// Postcondition: Returns a valid Expression or a descriptive error.
func Parse(expr string) (Expression, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	if s == "" {
		return Expression{}, fmt.Errorf("dice: empty expression")
	}
	countStr, rest, ok := strings.Cut(s, "d")
	if !ok {
		return Expression{}, fmt.Errorf("dice: missing 'd' in expression %q", expr)
	}

	e := Expression{Raw: expr, Count: 1}
	if countStr != "" {
		n, err := strconv.Atoi(countStr)
		if err != nil || n < 1 {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q", expr)
		}
		if n > MaxDice {
			return Expression{}, fmt.Errorf("dice: die count in %q exceeds %d", expr, MaxDice)
		}
		e.Count = n
	}

	if i := strings.IndexAny(rest, "+-"); i > 0 {
		mod, err := strconv.Atoi(rest[i:])
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", expr, err)
		}
		e.Modifier = mod
		rest = rest[:i]
	}

	sidesStr, khStr, hasKH := strings.Cut(rest, "kh")
	sides, err := strconv.Atoi(sidesStr)
	if err != nil || sides < 2 {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: must be >= 2", expr)
	}
	if sides > MaxSides {
		return Expression{}, fmt.Errorf("dice: die sides in %q exceed %d", expr, MaxSides)
	}
	e.Sides = sides

	if hasKH {
		kh, err := strconv.Atoi(khStr)
		if err != nil || kh <= 0 || kh >= e.Count {
			return Expression{}, fmt.Errorf("dice: kh value in %q must be > 0 and < count %d", expr, e.Count)
		}
		e.KeepHighest = kh
	}
	return e, nil
}

// RollResult is the outcome of rolling an Expression.
type RollResult struct {
	Expression string
	Dice       []int // kept die results before the modifier
	Modifier   int
}

// Total returns the sum of the kept dice plus the modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// Roll evaluates expr with src.
//
// Precondition: expr must come from Parse; src must be non-nil.
// Postcondition: len(Dice) is KeepHighest when set, Count otherwise; every
// die is in [1, Sides].
func Roll(expr Expression, src Source) RollResult {
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = src.Intn(expr.Sides) + 1
	}
	if expr.KeepHighest > 0 {
		sort.Sort(sort.Reverse(sort.IntSlice(rolled)))
		rolled = rolled[:expr.KeepHighest]
	}
	return RollResult{Expression: expr.Raw, Dice: rolled, Modifier: expr.Modifier}
}

// RollExpr parses expr and rolls it with src.
func RollExpr(expr string, src Source) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src), nil
}
