// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Command sfddctl is a small companion CLI for the sfdd library. It builds
// families of int sets from the command line and prints the result of a
// set-algebra or homomorphism operation, mostly useful for exploring the
// engine's behavior interactively without writing Go.
package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vecio/sfdd"
)

func newFactory() *sfdd.Factory[int] {
	return sfdd.New(func(a, b int) bool { return a < b }, func(a int) uint64 { return uint64(a) })
}

// parseFamily parses a family specification such as "1,2|1|3,4,5" into a
// sequence of sets, one per "|"-separated group.
func parseFamily(spec string) ([][]int, error) {
	if spec == "" {
		return nil, nil
	}
	groups := strings.Split(spec, "|")
	out := make([][]int, len(groups))
	for i, g := range groups {
		if g == "" {
			out[i] = nil
			continue
		}
		fields := strings.Split(g, ",")
		set := make([]int, len(fields))
		for j, field := range fields {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("invalid key %q in group %q: %w", field, g, err)
			}
			set[j] = v
		}
		out[i] = set
	}
	return out, nil
}

func buildFamily(f *sfdd.Factory[int], spec string) (sfdd.Node[int], error) {
	seqs, err := parseFamily(spec)
	if err != nil {
		return nil, err
	}
	return f.Make(seqs...), nil
}

func parseKeys(spec string) ([]int, error) {
	if spec == "" {
		return nil, nil
	}
	fields := strings.Split(spec, ",")
	keys := make([]int, len(fields))
	for i, field := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("invalid key %q: %w", field, err)
		}
		keys[i] = v
	}
	return keys, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sfddctl",
		Short:         "inspect and combine set-family decision diagrams from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newDescribeCmd(), newSetOpCmd(), newContainsCmd(), newHomCmd(), newStatsCmd())
	return root
}

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <family>",
		Short: "print the count and textual description of a family, e.g. \"1,2|1\"",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFactory()
			n, err := buildFamily(f, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "count=%d %s\n", n.Count(), n.Description())
			return nil
		},
	}
}

func newSetOpCmd() *cobra.Command {
	var op string
	cmd := &cobra.Command{
		Use:   "setop <a> <b>",
		Short: "apply a binary set-algebra operation to two families",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFactory()
			a, err := buildFamily(f, args[0])
			if err != nil {
				return err
			}
			b, err := buildFamily(f, args[1])
			if err != nil {
				return err
			}
			var res sfdd.Node[int]
			switch op {
			case "union":
				res = a.Union(b)
			case "intersection":
				res = a.Intersection(b)
			case "symdiff":
				res = a.SymmetricDifference(b)
			case "subtract":
				res = a.Subtracting(b)
			default:
				return fmt.Errorf("unknown operation %q (want union, intersection, symdiff, subtract)", op)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "count=%d %s\n", res.Count(), res.Description())
			return nil
		},
	}
	cmd.Flags().StringVar(&op, "op", "union", "union, intersection, symdiff, or subtract")
	return cmd
}

func newContainsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contains <family> <set>",
		Short: "report whether set is a member of family",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFactory()
			n, err := buildFamily(f, args[0])
			if err != nil {
				return err
			}
			keys, err := parseKeys(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n.Contains(keys))
			return nil
		},
	}
}

func newHomCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "hom <family> <keys>",
		Short: "apply Insert, Remove, or Filter with the given keys to a family",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFactory()
			n, err := buildFamily(f, args[0])
			if err != nil {
				return err
			}
			keys, err := parseKeys(args[1])
			if err != nil {
				return err
			}
			var phi sfdd.Homomorphism[int]
			switch kind {
			case "insert":
				phi = f.Insert(keys...)
			case "remove":
				phi = f.Remove(keys...)
			case "filter":
				phi = f.Filter(keys...)
			default:
				return fmt.Errorf("unknown homomorphism %q (want insert, remove, or filter)", kind)
			}
			res := f.Optimize(phi).Apply(n)
			fmt.Fprintf(cmd.OutOrStdout(), "count=%d %s\n", res.Count(), res.Description())
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "insert", "insert, remove, or filter")
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <families...>",
		Short: "build the given families in one factory and print unique-table statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFactory()
			specs := append([]string(nil), args...)
			sort.Strings(specs)
			for _, spec := range specs {
				if _, err := buildFamily(f, spec); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), f.Stats())
			return nil
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
