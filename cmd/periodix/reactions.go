package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/periodix/internal/chem"
	"github.com/san-kum/periodix/internal/reactions"
)

func runReactions(cmd *cobra.Command, args []string) error {
	rx, err := reactions.Load()
	if err != nil {
		return err
	}
	cat, err := chem.Load()
	if err != nil {
		return err
	}

	if listTypes || len(args) == 0 {
		fmt.Println("types: " + strings.Join(rx.Types(), ", "))
		var covered []string
		for _, n := range rx.Numbers() {
			e, err := cat.ByNumber(n)
			if err != nil {
				return err
			}
			covered = append(covered, fmt.Sprintf("%s (%d)", e.Symbol, len(rx.For(n))))
		}
		fmt.Println("elements: " + strings.Join(covered, ", "))
		return nil
	}

	e, err := cat.Find(args[0])
	if err != nil {
		return err
	}
	rs := reactions.Filter(rx.For(e.Number), reactionType)
	if len(rs) == 0 {
		if reactionType != "" {
			fmt.Printf("no %s reactions listed for %s\n", reactionType, e.Name)
			return nil
		}
		fmt.Println(reactions.EmptyMessage(e.Name))
		return nil
	}
	for i, r := range rs {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s [%s]\n", r.Name, r.Type)
		fmt.Printf("  %s\n", r.Equation)
		fmt.Printf("  %s\n", r.Description)
		fmt.Println("  conditions:")
		for _, c := range r.Conditions {
			fmt.Printf("    - %s\n", c)
		}
		fmt.Printf("  applications: %s\n", r.Applications)
	}
	return nil
}
