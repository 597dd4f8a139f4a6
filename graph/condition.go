package graph

import (
	"fmt"
	"strings"

	"github.com/hupe1980/agentgraph/core"
)

// Condition gates an edge on the producer's output message. Conditions form
// a small closed combinator set so that edge wiring stays serializable and
// testable without closures; CondFunc remains as an escape hatch for
// callers that genuinely need arbitrary predicates.
//
// All keyword matching is case-insensitive substring matching against
// Message.Text. Note that error-converted messages participate in
// evaluation like any other output, so a keyword occurring in an error
// description activates the edge.
type Condition interface {
	Evaluate(msg core.Message) bool
	String() string
}

type containsCond struct{ keyword string }

// Contains matches when the message text contains the keyword,
// case-insensitively.
func Contains(keyword string) Condition {
	return containsCond{keyword: keyword}
}

func (c containsCond) Evaluate(msg core.Message) bool {
	return strings.Contains(strings.ToLower(msg.Text), strings.ToLower(c.keyword))
}

func (c containsCond) String() string { return fmt.Sprintf("contains(%q)", c.keyword) }

type containsAnyCond struct{ keywords []string }

// ContainsAny matches when the message text contains at least one of the
// keywords. An empty keyword set never matches.
func ContainsAny(keywords ...string) Condition {
	return containsAnyCond{keywords: keywords}
}

func (c containsAnyCond) Evaluate(msg core.Message) bool {
	text := strings.ToLower(msg.Text)
	for _, kw := range c.keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func (c containsAnyCond) String() string {
	return fmt.Sprintf("containsAny(%s)", strings.Join(c.keywords, ","))
}

type allCond struct{ conds []Condition }

// All matches when every child condition matches.
func All(conds ...Condition) Condition { return allCond{conds: conds} }

func (c allCond) Evaluate(msg core.Message) bool {
	for _, cond := range c.conds {
		if !cond.Evaluate(msg) {
			return false
		}
	}
	return true
}

func (c allCond) String() string { return combineString("all", c.conds) }

type anyCond struct{ conds []Condition }

// Any matches when at least one child condition matches.
func Any(conds ...Condition) Condition { return anyCond{conds: conds} }

func (c anyCond) Evaluate(msg core.Message) bool {
	for _, cond := range c.conds {
		if cond.Evaluate(msg) {
			return true
		}
	}
	return false
}

func (c anyCond) String() string { return combineString("any", c.conds) }

type notCond struct{ cond Condition }

// Not inverts a condition.
func Not(cond Condition) Condition { return notCond{cond: cond} }

func (c notCond) Evaluate(msg core.Message) bool { return !c.cond.Evaluate(msg) }

func (c notCond) String() string { return fmt.Sprintf("not(%s)", c.cond) }

func combineString(op string, conds []Condition) string {
	parts := make([]string, len(conds))
	for i, c := range conds {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%s(%s)", op, strings.Join(parts, ","))
}

// CondFunc adapts an arbitrary predicate to the Condition interface.
type CondFunc func(msg core.Message) bool

// Evaluate implements Condition.
func (f CondFunc) Evaluate(msg core.Message) bool { return f(msg) }

func (f CondFunc) String() string { return "func" }
