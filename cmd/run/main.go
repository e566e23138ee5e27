package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	hostbridge "github.com/wippyai/host-bridge"
	"github.com/wippyai/host-bridge/bind"
	"github.com/wippyai/host-bridge/hostapi"
	"github.com/wippyai/host-bridge/hostcfg"
)

func main() {
	var (
		configFile  = flag.String("config", "", "Path to host config file (HCL)")
		funcName    = flag.String("call", "", "Function to call")
		argsStr     = flag.String("args", "", "Arguments, comma-separated; vector elements joined with ':'")
		list        = flag.Bool("list", false, "List registered functions and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if !*list && *funcName == "" && !*interactive {
		fmt.Fprintln(os.Stderr, "Usage: run [-config host.hcl] -list")
		fmt.Fprintln(os.Stderr, "       run [-config host.hcl] -call name [-args v1,v2,...]")
		fmt.Fprintln(os.Stderr, "       run [-config host.hcl] -i  (interactive mode)")
		os.Exit(1)
	}

	cfg := hostcfg.Default()
	if *configFile != "" {
		loaded, err := hostcfg.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	b, err := hostbridge.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer b.Close()
	registerDemoFuncs(b)

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(b); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(b, *funcName, *argsStr, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(b *hostbridge.Bridge, funcName, argsStr string, listOnly bool) error {
	fmt.Printf("Registered functions:\n")
	for _, sig := range b.Funcs.Signatures() {
		fmt.Printf("  %s  [%s]\n", sig, sig.Source)
	}

	if listOnly {
		return nil
	}

	sig, ok := b.Funcs.Lookup(funcName)
	if !ok {
		return fmt.Errorf("unknown function %q", funcName)
	}

	var parts []string
	if argsStr != "" {
		parts = strings.Split(argsStr, ",")
	}
	if len(parts) != sig.Arity {
		return fmt.Errorf("%s expects %d arguments, got %d", funcName, sig.Arity, len(parts))
	}

	args := make([]hostapi.Ref, len(parts))
	for i, raw := range parts {
		ref, err := parseArg(b.API, sig.Params[i], raw)
		if err != nil {
			return fmt.Errorf("argument %d: %w", i, err)
		}
		args[i] = ref
	}

	fmt.Printf("\nCalling %s(%s)...\n", funcName, argsStr)
	ref, hostErr := b.Funcs.Invoke(funcName, args)
	if hostErr != nil {
		return fmt.Errorf("call %s: %s", funcName, hostErr.Msg)
	}

	fmt.Printf("Result: %s\n", formatRef(b.API, ref))
	return nil
}

// parseArg builds the host value for one CLI argument. Scalar kinds take a
// single literal, vector kinds a ':'-joined element list; "na" in any
// position means the missing value.
func parseArg(api hostapi.API, kind bind.Kind, raw string) (hostapi.Ref, error) {
	raw = strings.TrimSpace(raw)

	elems := []string{raw}
	switch kind {
	case bind.KindInts, bind.KindReals, bind.KindLogicals, bind.KindStrings:
		elems = strings.Split(raw, ":")
	}

	// Allocation sentinel-fills, so "na" positions are simply skipped.
	switch kind {
	case bind.KindInt, bind.KindInts:
		ref := api.Alloc(hostapi.TypeInteger, len(elems))
		for i, e := range elems {
			if strings.EqualFold(e, "na") {
				continue
			}
			v, err := strconv.ParseInt(e, 10, 32)
			if err != nil {
				return hostapi.Invalid, fmt.Errorf("bad integer %q", e)
			}
			api.SetIntElt(ref, i, int32(v))
		}
		return ref, nil

	case bind.KindReal, bind.KindReals:
		ref := api.Alloc(hostapi.TypeReal, len(elems))
		for i, e := range elems {
			if strings.EqualFold(e, "na") {
				continue
			}
			v, err := strconv.ParseFloat(e, 64)
			if err != nil {
				return hostapi.Invalid, fmt.Errorf("bad real %q", e)
			}
			api.SetRealElt(ref, i, v)
		}
		return ref, nil

	case bind.KindLogical, bind.KindLogicals:
		ref := api.Alloc(hostapi.TypeLogical, len(elems))
		for i, e := range elems {
			switch strings.ToLower(e) {
			case "na":
			case "true", "1", "t":
				api.SetLglElt(ref, i, hostapi.True)
			case "false", "0", "f":
				api.SetLglElt(ref, i, hostapi.False)
			default:
				return hostapi.Invalid, fmt.Errorf("bad logical %q", e)
			}
		}
		return ref, nil

	case bind.KindString, bind.KindStrings:
		ref := api.Alloc(hostapi.TypeString, len(elems))
		for i, e := range elems {
			if strings.EqualFold(e, "na") {
				continue
			}
			api.SetStrElt(ref, i, e)
		}
		return ref, nil

	default:
		return hostapi.Invalid, fmt.Errorf("cannot build a %q argument from the command line", kind)
	}
}

// formatRef renders a host value for display, substituting "NA" for the
// sentinel encodings.
func formatRef(api hostapi.API, ref hostapi.Ref) string {
	s := api.Sentinels()
	t := api.TypeOf(ref)
	n := api.Length(ref)

	var elems []string
	switch t {
	case hostapi.TypeNull:
		return "NULL"
	case hostapi.TypeInteger:
		for i := 0; i < n; i++ {
			v := api.IntElt(ref, i)
			if s.IsNAInt(v) {
				elems = append(elems, "NA")
			} else {
				elems = append(elems, strconv.FormatInt(int64(v), 10))
			}
		}
	case hostapi.TypeReal:
		for i := 0; i < n; i++ {
			v := api.RealElt(ref, i)
			if s.IsNAReal(v) {
				elems = append(elems, "NA")
			} else {
				elems = append(elems, strconv.FormatFloat(v, 'g', -1, 64))
			}
		}
	case hostapi.TypeLogical:
		for i := 0; i < n; i++ {
			switch v := api.LglElt(ref, i); {
			case s.IsNALogical(v):
				elems = append(elems, "NA")
			case v == hostapi.True:
				elems = append(elems, "TRUE")
			default:
				elems = append(elems, "FALSE")
			}
		}
	case hostapi.TypeString:
		for i := 0; i < n; i++ {
			v := api.StrElt(ref, i)
			if s.IsNAString(v) {
				elems = append(elems, "NA")
			} else {
				elems = append(elems, strconv.Quote(v))
			}
		}
	case hostapi.TypeList:
		for i := 0; i < n; i++ {
			elems = append(elems, formatRef(api, api.ListElt(ref, i)))
		}
		return "list(" + strings.Join(elems, ", ") + ")"
	}

	if len(elems) == 1 {
		return elems[0]
	}
	return "[" + strings.Join(elems, ", ") + "]"
}
