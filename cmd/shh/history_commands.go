package main

import (
	"flag"
	"fmt"

	"shh/internal/ledger"
)

func runHistory(led *ledger.Ledger, args []string) error {
	if len(args) == 1 && args[0] == "clear" {
		if err := led.Clear(); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
		fmt.Println("History cleared")
		return nil
	}

	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	n := fs.Int("n", 20, "maximum number of records to show")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return fmt.Errorf("usage: shh history [-n N] | shh history clear")
	}

	records, err := led.Recent(*n)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("History: (empty)")
		return nil
	}

	fmt.Printf("History (%d records, newest first):\n", len(records))
	for _, r := range records {
		line := fmt.Sprintf("  %s  %-6s  %s", r.At.Local().Format("2006-01-02 15:04:05"), r.Op, r.Carrier)
		if r.Output != "" {
			line += " -> " + r.Output
		}
		line += fmt.Sprintf("  (%s, %d bytes)", r.Filename, r.PayloadBytes)
		fmt.Println(line)
	}
	return nil
}
