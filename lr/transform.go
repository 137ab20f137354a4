package lr

// RemoveImmediateLeftRecursion returns a grammar without immediately left
// recursive rules. For every non-terminal A with rules
//
//     A → A α1 | … | A αn | β1 | … | βm
//
// a fresh non-terminal A' is introduced and the rules are replaced by
//
//     A  → β1 A' | … | βm A'
//     A' → α1 A' | … | αn A' | ε
//
// Rules A → A are dropped. A non-terminal with left recursive rules only cannot
// be rewritten and is left untouched. Indirect left recursion is reported to the
// trace, but not removed.
func RemoveImmediateLeftRecursion(g *Grammar) (*Grammar, error) {
	rules := g.ruleMap()
	var fresh []Symbol
	taken := func(s Symbol) bool {
		return g.IsTerminal(s) || g.IsNonTerminal(s) || contains(fresh, s)
	}
	for _, A := range g.NonTerminals() {
		var alphas, betas []Rule
		recursive := false
		for _, r := range g.Rules(A) {
			if r[0] == A {
				recursive = true
				if len(r) > 1 {
					alphas = append(alphas, r[1:])
				}
				continue
			}
			betas = append(betas, r)
		}
		if !recursive {
			continue
		}
		if len(alphas) == 0 { // only A → A
			rules[A] = betas
			continue
		}
		if len(betas) == 0 {
			tracer().Infof("%s has left recursive rules only, cannot remove left recursion", A)
			continue
		}
		A1 := freshSymbol(A, taken)
		fresh = append(fresh, A1)
		rules[A] = make([]Rule, 0, len(betas))
		for _, beta := range betas {
			rules[A] = append(rules[A], beta.concat(A1))
		}
		rules[A1] = make([]Rule, 0, len(alphas)+1)
		for _, alpha := range alphas {
			rules[A1] = append(rules[A1], alpha.concat(A1))
		}
		rules[A1] = append(rules[A1], EpsilonRule())
		tracer().Debugf("removed left recursion of %s, introducing %s", A, A1)
	}
	gnew, err := g.derive(rules, g.Start(), fresh...)
	if err != nil {
		return nil, err
	}
	for _, A := range LeftRecursive(gnew) {
		tracer().Infof("non-terminal %s is left recursive", A)
	}
	return gnew, nil
}

// LeftRecursive returns all non-terminals A with A ⇒+ A … , i.e. all
// non-terminals which are left recursive, either directly or indirectly.
// Leading nullable non-terminals are taken into account.
func LeftRecursive(g *Grammar) []Symbol {
	nullable := nullableSet(g)
	leads := make(map[Symbol]*SymbolSet) // A -> non-terminals leading a rule of A
	for _, p := range g.Productions() {
		if leads[p.LHS] == nil {
			leads[p.LHS] = NewSymbolSet()
		}
		for _, X := range p.RHS.Symbols() {
			if !g.IsNonTerminal(X) {
				break
			}
			leads[p.LHS].Add(X)
			if !nullable.Contains(X) {
				break
			}
		}
	}
	var result []Symbol
	for _, A := range g.NonTerminals() {
		// depth first search for a path A ⇒+ A
		seen := NewSymbolSet()
		stack := []Symbol{A}
		for len(stack) > 0 {
			B := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if leads[B] == nil {
				continue
			}
			if leads[B].Contains(A) {
				result = append(result, A)
				break
			}
			for _, C := range leads[B].Values() {
				if seen.Add(C) {
					stack = append(stack, C)
				}
			}
		}
	}
	return result
}

// RemoveEpsilon returns a grammar without epsilon rules. Every rule is replaced
// by all of its variants with any subset of the nullable symbols erased. Empty
// variants and epsilon rules are dropped, as well as trivial rules A → A.
//
// If the start symbol is nullable, it keeps its epsilon rule, so the
// language of the grammar stays the same. For a start symbol not occurring on
// any right hand side (e.g., after augmenting a grammar), this is the only
// remaining epsilon rule.
func RemoveEpsilon(g *Grammar) (*Grammar, error) {
	nullable := nullableSet(g)
	rules := make(map[Symbol][]Rule)
	for _, p := range g.Productions() {
		if p.RHS.IsEpsilon() {
			continue
		}
		for _, v := range variants(p.RHS, nullable) {
			if len(v) == 1 && v[0] == p.LHS {
				continue
			}
			rules[p.LHS] = append(rules[p.LHS], v)
		}
	}
	// symbols which derive nothing but ε have lost all their rules; removing
	// their uses may empty further non-terminals
	cleared := NewSymbolSet()
	for changed := true; changed; {
		changed = false
		for _, A := range g.NonTerminals() {
			if len(rules[A]) > 0 || !nullable.Contains(A) || !cleared.Add(A) {
				continue
			}
			changed = true
			for B, R := range rules {
				rules[B] = withoutSymbol(R, A)
			}
		}
	}
	if nullable.Contains(g.Start()) {
		rules[g.Start()] = append(rules[g.Start()], EpsilonRule())
	}
	tracer().Debugf("removed epsilon rules from %s, nullable were %v", g.Name, nullable)
	return g.derive(rules, g.Start())
}

// variants returns every variant of r with any subset of nullable symbols erased,
// except the empty one.
func variants(r Rule, nullable *SymbolSet) []Rule {
	vars := []Rule{{}}
	for _, X := range r.Symbols() {
		n := len(vars)
		for i := 0; i < n; i++ {
			with := append(append(Rule{}, vars[i]...), X)
			if nullable.Contains(X) {
				vars = append(vars, with) // keep the variant without X at i
			} else {
				vars[i] = with
			}
		}
	}
	result := make([]Rule, 0, len(vars))
	for _, v := range vars {
		if len(v) > 0 {
			result = append(result, v)
		}
	}
	return result
}

func withoutSymbol(rules []Rule, A Symbol) []Rule {
	result := rules[:0]
	for _, r := range rules {
		if !contains(r, A) {
			result = append(result, r)
		}
	}
	return result
}

// nullableSet computes the nullable non-terminals of g.
func nullableSet(g *Grammar) *SymbolSet {
	ga := &Analysis{g: g, nullable: NewSymbolSet()}
	ga.computeNullable()
	return ga.nullable
}
