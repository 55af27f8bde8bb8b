package syntax

// GroupNumbering is capture-group metadata derived from a parsed pattern.
// It is computed on demand rather than stored on the AST.
type GroupNumbering struct {
	// MaxIndex is the highest capture index in the pattern, 0 when the
	// pattern has no capturing groups.
	MaxIndex int

	// Order lists capture indexes in the order their groups open in the
	// pattern. Under branch-reset groups the same index can appear more
	// than once.
	Order []int

	// Names maps each group name to the indexes it captures as. A name
	// maps to multiple indexes only when branch-reset alternatives reuse
	// it.
	Names map[string][]int
}

// Numbering walks the pattern and collects its capture-group numbering.
func Numbering(re *Regex) GroupNumbering {
	n := GroupNumbering{Names: make(map[string][]int)}
	if re == nil || re.Expr == nil {
		return n
	}
	Walk(re.Expr, func(node Node) bool {
		g, ok := node.(*Group)
		if !ok || g.Index == 0 {
			return true
		}
		if g.Index > n.MaxIndex {
			n.MaxIndex = g.Index
		}
		n.Order = append(n.Order, g.Index)
		if g.Name != "" {
			n.Names[g.Name] = append(n.Names[g.Name], g.Index)
		}
		return true
	})
	return n
}

// ByIndex returns the first group node carrying the given capture index,
// or nil when the pattern has no such group.
func ByIndex(re *Regex, index int) *Group {
	if re == nil || re.Expr == nil || index <= 0 {
		return nil
	}
	var found *Group
	Walk(re.Expr, func(node Node) bool {
		if found != nil {
			return false
		}
		if g, ok := node.(*Group); ok && g.Index == index {
			found = g
			return false
		}
		return true
	})
	return found
}
