package main

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

func init() {
	register(12, day12)
}

const unfoldFactor = 5

func day12(path string, logger *zap.Logger) (answers, error) {
	var ans answers
	logger.Info("solving")
	err := forLines(path, func(n int, line string) error {
		r, err := parseRecord(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		folded := r.arrangements()
		unfolded := r.unfold(unfoldFactor).arrangements()
		if ce := logger.Check(zap.DebugLevel, "counted arrangements"); ce != nil {
			ce.Write(
				zap.Int("line", n),
				zap.Stringer("record", r),
				zap.String("folded", commaUint(folded)),
				zap.String("unfolded", commaUint(unfolded)),
			)
		}
		ans.part1 += folded
		ans.part2 += unfolded
		return nil
	})
	if err != nil {
		return answers{}, err
	}
	logger.Info("totals",
		zap.String("part1", commaUint(ans.part1)),
		zap.String("part2", commaUint(ans.part2)),
	)
	return ans, nil
}

func commaUint(v uint64) string {
	return humanize.BigComma(new(big.Int).SetUint64(v))
}

type spring uint8

const (
	operational spring = iota
	damaged
	unknown
)

func (s spring) String() string {
	switch s {
	case operational:
		return "."
	case damaged:
		return "#"
	case unknown:
		return "?"
	}
	return fmt.Sprintf("spring(%d)", uint8(s))
}

// A conditionRecord is one row of springs together with the lengths of
// its contiguous damaged groups, in order.
type conditionRecord struct {
	springs []spring
	groups  []int
}

func (r conditionRecord) String() string {
	var b strings.Builder
	for _, s := range r.springs {
		b.WriteString(s.String())
	}
	b.WriteByte(' ')
	for i, g := range r.groups {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(g))
	}
	return b.String()
}

var (
	errMalformedLine    = errors.New("malformed line")
	errInvalidCharacter = errors.New("invalid character")
	errInvalidGroupSpec = errors.New("invalid group spec")
)

// parseRecord parses a line such as "???.### 1,1,3".
func parseRecord(line string) (conditionRecord, error) {
	var r conditionRecord
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return r, fmt.Errorf("%w %q: want <springs> <groups>", errMalformedLine, line)
	}
	r.springs = make([]spring, 0, len(fields[0]))
	for _, c := range fields[0] {
		switch c {
		case '.':
			r.springs = append(r.springs, operational)
		case '#':
			r.springs = append(r.springs, damaged)
		case '?':
			r.springs = append(r.springs, unknown)
		default:
			return conditionRecord{}, fmt.Errorf("%w %q in %q", errInvalidCharacter, c, line)
		}
	}
	for _, field := range strings.Split(fields[1], ",") {
		g, err := strconv.Atoi(field)
		if err != nil || g < 1 {
			return conditionRecord{}, fmt.Errorf("%w: bad group size %q in %q", errInvalidGroupSpec, field, line)
		}
		r.groups = append(r.groups, g)
	}
	return r, nil
}

// unfold returns a new record made of n copies of r's springs joined by
// single unknown springs, and n copies of its groups.
func (r conditionRecord) unfold(n int) conditionRecord {
	u := conditionRecord{
		springs: make([]spring, 0, n*len(r.springs)+n-1),
		groups:  make([]int, 0, n*len(r.groups)),
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			u.springs = append(u.springs, unknown)
		}
		u.springs = append(u.springs, r.springs...)
		u.groups = append(u.groups, r.groups...)
	}
	return u
}

// arrangements counts the ways of resolving r's unknown springs so that
// its damaged runs match r.groups exactly.
func (r conditionRecord) arrangements() uint64 {
	// The trailing operational sentinel lets a group end at the last
	// spring without a bounds check on its separator.
	springs := make([]spring, len(r.springs)+1)
	copy(springs, r.springs)
	springs[len(r.springs)] = operational

	c := &arrangementCounter{
		springs: springs,
		groups:  r.groups,
		need:    make([]int, len(r.groups)+1),
		nextOp:  make([]int, len(springs)+1),
		memo:    newMemoTable(len(r.groups), len(springs)),
	}
	// need[i] is the shortest suffix (sentinel included) that can hold
	// groups[i:]: each group plus the one separator after it. need never
	// exceeds len(springs), so it cannot overflow.
	for i := len(r.groups) - 1; i >= 0; i-- {
		if r.groups[i] >= len(springs)-c.need[i+1] {
			return 0
		}
		c.need[i] = c.need[i+1] + r.groups[i] + 1
	}
	c.lastDamaged = -1
	c.nextOp[len(springs)] = len(springs)
	for i := len(springs) - 1; i >= 0; i-- {
		c.nextOp[i] = c.nextOp[i+1]
		switch springs[i] {
		case operational:
			c.nextOp[i] = i
		case damaged:
			if c.lastDamaged < 0 {
				c.lastDamaged = i
			}
		}
	}
	return c.count(0, 0)
}

type arrangementCounter struct {
	springs []spring // includes the sentinel
	groups  []int
	need    []int
	// nextOp[i] is the index of the first operational spring at or
	// after i, or len(springs).
	nextOp      []int
	lastDamaged int
	memo        *memoTable
}

// count returns the number of arrangements of groups[gi:] within
// springs[pos:].
func (c *arrangementCounter) count(gi, pos int) uint64 {
	if gi == len(c.groups) {
		if pos <= c.lastDamaged {
			return 0
		}
		return 1
	}
	groupsLeft, suffixLen := len(c.groups)-gi, len(c.springs)-pos
	if suffixLen < c.need[gi] {
		return 0
	}
	if v, ok := c.memo.get(groupsLeft, suffixLen); ok {
		return v
	}

	var n uint64
	if c.springs[pos] != damaged {
		n += c.count(gi, pos+1)
	}
	g := c.groups[gi]
	if c.nextOp[pos] >= pos+g && c.springs[pos+g] != damaged {
		n += c.count(gi+1, pos+g+1)
	}
	c.memo.set(groupsLeft, suffixLen, n)
	return n
}

// A memoTable caches counts by (groups remaining, suffix length). It
// belongs to a single arrangements call.
type memoTable struct {
	cols int
	vals []uint64
	ok   []bool
}

func newMemoTable(groups, springs int) *memoTable {
	size := (groups + 1) * (springs + 1)
	return &memoTable{
		cols: springs + 1,
		vals: make([]uint64, size),
		ok:   make([]bool, size),
	}
}

func (m *memoTable) get(groupsLeft, suffixLen int) (uint64, bool) {
	i := groupsLeft*m.cols + suffixLen
	return m.vals[i], m.ok[i]
}

func (m *memoTable) set(groupsLeft, suffixLen int, v uint64) {
	i := groupsLeft*m.cols + suffixLen
	if m.ok[i] {
		panic(fmt.Sprintf("memo entry (%d, %d) written twice", groupsLeft, suffixLen))
	}
	m.vals[i] = v
	m.ok[i] = true
}
