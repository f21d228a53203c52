// Command shh hides a file or string inside the least-significant bits of
// an image's color channels, and recovers it again.
//
//	shh encode <image> <payload> [output]   embed a payload (alias: e)
//	shh decode <image> [output]             extract a payload (alias: d)
//	shh capacity <image>                    show how much an image can hold
//	shh history [-n N] | history clear      list or clear past operations
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"shh/internal/carrier"
	"shh/internal/config"
	"shh/internal/ledger"
	"shh/internal/logging"
	"shh/internal/payload"
	"shh/internal/stego"
	"shh/internal/store/bolt"
)

var logger = logging.For("cli")

func main() {
	configPath := flag.String("config", "", "path to config file")
	logLevel := flag.String("log-level", "", "log level (overrides config)")
	logFormat := flag.String("log-format", "", "log format: text or json (overrides config)")
	dataDir := flag.String("data-dir", "", "history data directory (overrides config)")
	noHistory := flag.Bool("no-history", false, "do not record this run in the history")
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// CLI flags override config file values.
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *dataDir != "" {
		cfg.History.DataDir = *dataDir
	}
	if *noHistory {
		cfg.History.Enabled = false
	}

	logging.Init(cfg.Log.Level, cfg.Log.Format)

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	led, closeLedger := openLedger(cfg)
	defer closeLedger()

	switch args[0] {
	case "encode", "e":
		err = runEncode(cfg, led, args[1:])
	case "decode", "d":
		err = runDecode(cfg, led, args[1:])
	case "capacity":
		err = runCapacity(args[1:])
	case "history":
		err = runHistory(led, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "shh: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `shh — hide data in the low bits of an image

Usage:
  shh [flags] encode <image> <payload> [output]   (alias: e)
  shh [flags] decode <image> [output]             (alias: d)
  shh [flags] capacity <image>
  shh [flags] history [-n N]
  shh [flags] history clear

The payload is a file path, or a literal string when no such file exists.
Encoded output is always PNG. Decode writes the payload to its embedded
filename, or to [output] plus the original extension; use "-" to write
the payload to stdout.

Flags:
`)
	flag.PrintDefaults()
}

// openLedger opens the history store, or returns a disabled ledger when
// history is off or the store cannot be opened. History is an extra;
// failing to record must not block an encode or decode.
func openLedger(cfg *config.Config) (*ledger.Ledger, func()) {
	if !cfg.History.Enabled {
		return ledger.New(nil), func() {}
	}

	dir := config.ExpandHome(cfg.History.DataDir)
	if err := os.MkdirAll(dir, 0700); err != nil {
		logger.Warn("history disabled", "err", err)
		return ledger.New(nil), func() {}
	}
	st, err := bolt.Open(filepath.Join(dir, "history.db"))
	if err != nil {
		logger.Warn("history disabled", "err", err)
		return ledger.New(nil), func() {}
	}
	return ledger.New(st), func() {
		if err := st.Close(); err != nil {
			logger.Warn("closing history db", "err", err)
		}
	}
}

func runEncode(cfg *config.Config, led *ledger.Ledger, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("usage: shh encode <image> <payload> [output]")
	}

	im, err := carrier.Load(args[0])
	if err != nil {
		return err
	}

	p := payload.Resolve(args[1], cfg.Output.DefaultName)
	if !p.FromFile {
		logger.Debug("payload treated as literal string", "bytes", len(p.Bytes))
	}

	out := cfg.Output.EncodedName
	if len(args) == 3 {
		out = args[2]
	}
	out = ensurePNGExt(out)

	if err := stego.Encode(im, p.Name, p.Bytes); err != nil {
		return err
	}
	if err := im.SavePNG(out); err != nil {
		return err
	}

	used := stego.EncodedBits(p.Name, p.Bytes)
	logger.Info("payload embedded",
		"carrier", args[0],
		"output", out,
		"filename", p.Name,
		"payload_bytes", len(p.Bytes),
		"used_bits", used,
		"capacity_bits", im.CapacityBits(),
	)
	fmt.Printf("Encoded image saved to '%s'\n", out)

	if err := led.Append(ledger.Record{
		Op:           ledger.OpEncode,
		Carrier:      args[0],
		Output:       out,
		Filename:     p.Name,
		PayloadBytes: int64(len(p.Bytes)),
		CapacityBits: im.CapacityBits(),
		UsedBits:     used,
	}); err != nil {
		logger.Warn("recording history", "err", err)
	}
	return nil
}

func runDecode(cfg *config.Config, led *ledger.Ledger, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: shh decode <image> [output]")
	}

	im, err := carrier.Load(args[0])
	if err != nil {
		return err
	}

	name, data, err := stego.Decode(im)
	if err != nil {
		return err
	}

	var outArg string
	if len(args) == 2 {
		outArg = args[1]
	}

	if outArg == "-" {
		if err := writeToStdout(data); err != nil {
			return err
		}
	} else {
		outPath := decodeOutputPath(outArg, name, cfg.Output.DefaultName)
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			return fmt.Errorf("writing payload: %w", err)
		}
		fmt.Printf("Decoded payload saved to '%s'\n", outPath)
		if outArg != "" {
			fmt.Printf("Original file name was '%s'\n", name)
		}
	}

	logger.Info("payload extracted",
		"carrier", args[0],
		"filename", name,
		"payload_bytes", len(data),
	)

	if err := led.Append(ledger.Record{
		Op:           ledger.OpDecode,
		Carrier:      args[0],
		Filename:     name,
		PayloadBytes: int64(len(data)),
		CapacityBits: im.CapacityBits(),
	}); err != nil {
		logger.Warn("recording history", "err", err)
	}
	return nil
}

func runCapacity(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: shh capacity <image>")
	}
	im, err := carrier.Load(args[0])
	if err != nil {
		return err
	}

	w, h := im.Dimensions()
	bits := im.CapacityBits()
	maxPayload := 0
	if bits > stego.HeaderBits {
		maxPayload = (bits - stego.HeaderBits) / 8
	}
	fmt.Printf("%dx%d pixels, %d embeddable bits\n", w, h, bits)
	fmt.Printf("max payload with an empty filename: %d bytes\n", maxPayload)
	fmt.Println("each filename byte costs a further 8 bits")
	return nil
}
