package config

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relnotes/internal/config"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List configuration keys",
	Long:  "List every configuration key with its type, default value and description.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tTYPE\tDEFAULT\tDESCRIPTION")
		for _, key := range config.SortedKeys() {
			schema := config.KnownKeys[key]
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cCyan(key), typeLabel(schema), formatDefault(schema.Default), schema.Description)
		}
		return w.Flush()
	},
}

func typeLabel(schema config.ConfigKeySchema) string {
	if schema.Type == config.TypeEnum {
		return strings.Join(schema.AllowedValues, "|")
	}
	return schema.Type.String()
}

// formatDefault renders a default value on one line, escaping newlines.
func formatDefault(v interface{}) string {
	switch d := v.(type) {
	case nil:
		return "-"
	case string:
		if d == "" {
			return `""`
		}
		return fmt.Sprintf("%q", d)
	case []string:
		return "[" + strings.Join(d, ", ") + "]"
	default:
		return fmt.Sprint(d)
	}
}
