package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/slrsim/lr"
	"github.com/npillmayer/slrsim/lr/ptree"
	"github.com/npillmayer/slrsim/lr/slr"
	"github.com/pterm/pterm"
)

func renderTable(t *lr.Table) error {
	return pterm.DefaultTable.WithHasHeader().WithData(t.Rows()).Render()
}

func renderConflicts(t *lr.Table) {
	for _, c := range t.Conflicts() {
		pterm.Warning.Println(c.String())
	}
	if !t.HasConflicts() {
		pterm.Success.Println("grammar is SLR(1)")
	}
}

func renderGrammar(g *lr.Grammar) error {
	data := [][]string{{"#", "production"}}
	for _, r := range g.Rules() {
		data = append(data, []string{fmt.Sprintf("%d", r.ID), r.String()})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func renderFirstFollow(ga *lr.LRAnalysis) error {
	g := ga.Grammar()
	data := [][]string{{"non-terminal", "nullable", "FIRST", "FOLLOW"}}
	for _, N := range g.NonTerminals() {
		nullable := ""
		if ga.Sets().Nullable(N) {
			nullable = "yes"
		}
		data = append(data, []string{N, nullable, setString(ga.First(N)), setString(ga.Follow(N))})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func setString(syms []string) string {
	return "{ " + strings.Join(syms, " ") + " }"
}

func renderStates(c *lr.CFSM) error {
	g := c.Grammar()
	for _, s := range c.States() {
		title := fmt.Sprintf("state %d", s.ID)
		if s.Accept {
			title += " (accept)"
		}
		ll := pterm.LeveledList{pterm.LeveledListItem{Level: 0, Text: title}}
		for _, i := range s.Items() {
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: i.Format(g)})
		}
		for _, t := range s.Transitions() {
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: fmt.Sprintf("%s → %d", t.Symbol, t.Target)})
		}
		if err := pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render(); err != nil {
			return err
		}
	}
	return nil
}

// traceRows formats parser steps as table rows.
func traceRows(steps []slr.Step) [][]string {
	data := [][]string{{"step", "states", "symbols", "input", "action"}}
	for _, step := range steps {
		data = append(data, []string{
			fmt.Sprintf("%d", step.Index+1),
			intsString(step.States),
			strings.Join(step.Symbols, " "),
			strings.Join(step.Input, " "),
			step.Label,
		})
	}
	return data
}

func renderTrace(steps []slr.Step) error {
	return pterm.DefaultTable.WithHasHeader().WithData(traceRows(steps)).Render()
}

func intsString(ints []int) string {
	s := make([]string, len(ints))
	for k, i := range ints {
		s[k] = fmt.Sprintf("%d", i)
	}
	return strings.Join(s, " ")
}

func renderStep(step slr.Step) {
	msg := fmt.Sprintf("%d: %s", step.Index+1, step.Explanation)
	if step.Kind.IsError() {
		pterm.Error.Println(msg)
	} else {
		pterm.Info.Println(msg)
	}
	pterm.Printf("   states  %s\n", intsString(step.States))
	pterm.Printf("   symbols %s\n", strings.Join(step.Symbols, " "))
	pterm.Printf("   input   %s\n", strings.Join(step.Input, " "))
}

func renderForest(forest ptree.Forest) error {
	if len(forest) == 0 {
		pterm.Info.Println("empty forest")
		return nil
	}
	ll := leveledForest(forest)
	return pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render()
}

// leveledForest lists the nodes of a forest, top-down, with their depths.
func leveledForest(forest ptree.Forest) pterm.LeveledList {
	lister := &leveledLister{}
	for _, root := range forest {
		ptree.Walk(root, lister, ptree.LtoR, ptree.Continue)
	}
	return lister.ll
}

type leveledLister struct {
	ll pterm.LeveledList
}

func (l *leveledLister) EnterRule(n *ptree.Node, ctxt ptree.RuleCtxt) bool {
	l.ll = append(l.ll, pterm.LeveledListItem{Level: ctxt.Level, Text: n.Label})
	return true
}

func (l *leveledLister) ExitRule(*ptree.Node, []interface{}, ptree.RuleCtxt) interface{} {
	return nil
}

func (l *leveledLister) Terminal(n *ptree.Node, ctxt ptree.RuleCtxt) interface{} {
	text := n.Label
	if n.Value != nil && *n.Value != n.Label {
		text = fmt.Sprintf("%s \"%s\"", n.Label, *n.Value)
	}
	l.ll = append(l.ll, pterm.LeveledListItem{Level: ctxt.Level, Text: text})
	return nil
}
