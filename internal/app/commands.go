package app

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/samvad-hq/yelp-go/pkg/yelp"
	"github.com/spf13/pflag"
)

type command struct {
	usage string
	run   func(ctx context.Context, c *yelp.Client, args []string) (any, error)
}

var commands = map[string]command{
	"business": {usage: "business <id>", run: runBusiness},
	"search":   {usage: "search <location> [--lat <lat> --long <long>]", run: runSearch},
	"bbox":     {usage: "bbox <sw_lat> <sw_long> <ne_lat> <ne_long>", run: runBoundingBox},
	"coords":   {usage: "coords <lat> <long> [--accuracy [--altitude [--altitude-accuracy]]]", run: runCoordinates},
	"phone":    {usage: "phone <number>", run: runPhone},
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Usage writes the command list to w.
func Usage(w io.Writer) {
	fmt.Fprintln(w, "usage: yelp [global flags] <command> [flags] [args]")
	fmt.Fprintln(w, "commands:")
	for _, name := range commandNames() {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
	fmt.Fprintln(w, "every command accepts repeatable --param key=value")
}

// commandFlags holds the flags shared by all commands.
type commandFlags struct {
	fs     *pflag.FlagSet
	params []string
}

func newCommandFlags(name string) *commandFlags {
	cf := &commandFlags{fs: pflag.NewFlagSet(name, pflag.ContinueOnError)}
	cf.fs.SetOutput(io.Discard)
	cf.fs.StringArrayVar(&cf.params, "param", nil, "extra API parameter as key=value (repeatable)")
	return cf
}

// parse parses args and checks the positional count.
func (cf *commandFlags) parse(args []string, positional int) ([]string, yelp.Params, error) {
	flagArgs, rest := splitArgs(args)
	if err := cf.fs.Parse(flagArgs); err != nil {
		return nil, nil, fmt.Errorf("parse flags: %w", err)
	}
	rest = append(rest, cf.fs.Args()...)
	if len(rest) != positional {
		return nil, nil, fmt.Errorf("expected %d argument(s), got %d", positional, len(rest))
	}
	params, err := parseParams(cf.params)
	if err != nil {
		return nil, nil, err
	}
	return rest, params, nil
}

// splitArgs separates flags from positionals so negative coordinates are not
// mistaken for shorthand flags. Every command flag takes a value.
func splitArgs(args []string) (flags, positional []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return flags, append(positional, args[i+1:]...)
		case strings.HasPrefix(arg, "-") && !isNumber(arg):
			flags = append(flags, arg)
			if !strings.Contains(arg, "=") && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		default:
			positional = append(positional, arg)
		}
	}
	return flags, positional
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func parseParams(pairs []string) (yelp.Params, error) {
	params := yelp.Params{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q (expected key=value)", pair)
		}
		params[key] = value
	}
	return params, nil
}

func parseFloats(args []string, names ...string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", names[i], arg, err)
		}
		out[i] = v
	}
	return out, nil
}

func runBusiness(ctx context.Context, c *yelp.Client, args []string) (any, error) {
	rest, params, err := newCommandFlags("business").parse(args, 1)
	if err != nil {
		return nil, err
	}
	return c.GetBusiness(ctx, rest[0], params)
}

func runSearch(ctx context.Context, c *yelp.Client, args []string) (any, error) {
	cf := newCommandFlags("search")
	lat := cf.fs.Float64("lat", 0, "current latitude (used with --long)")
	long := cf.fs.Float64("long", 0, "current longitude (used with --lat)")
	rest, params, err := cf.parse(args, 1)
	if err != nil {
		return nil, err
	}

	latSet, longSet := cf.fs.Changed("lat"), cf.fs.Changed("long")
	if latSet != longSet {
		return nil, fmt.Errorf("--lat and --long must be given together")
	}
	var current *yelp.LatLong
	if latSet {
		current = &yelp.LatLong{Latitude: *lat, Longitude: *long}
	}
	return c.Search(ctx, rest[0], current, params)
}

func runBoundingBox(ctx context.Context, c *yelp.Client, args []string) (any, error) {
	rest, params, err := newCommandFlags("bbox").parse(args, 4)
	if err != nil {
		return nil, err
	}
	v, err := parseFloats(rest, "sw_lat", "sw_long", "ne_lat", "ne_long")
	if err != nil {
		return nil, err
	}
	box := yelp.BoundingBox{
		SouthWest: yelp.LatLong{Latitude: v[0], Longitude: v[1]},
		NorthEast: yelp.LatLong{Latitude: v[2], Longitude: v[3]},
	}
	return c.SearchByBoundingBox(ctx, box, params)
}

func runCoordinates(ctx context.Context, c *yelp.Client, args []string) (any, error) {
	cf := newCommandFlags("coords")
	accuracy := cf.fs.Float64("accuracy", 0, "location accuracy")
	altitude := cf.fs.Float64("altitude", 0, "altitude (requires --accuracy)")
	altitudeAccuracy := cf.fs.Float64("altitude-accuracy", 0, "altitude accuracy (requires --altitude)")
	rest, params, err := cf.parse(args, 2)
	if err != nil {
		return nil, err
	}
	v, err := parseFloats(rest, "lat", "long")
	if err != nil {
		return nil, err
	}

	coord := yelp.Coordinate{Latitude: v[0], Longitude: v[1]}
	if cf.fs.Changed("accuracy") {
		coord.Accuracy = yelp.Float64(*accuracy)
	}
	if cf.fs.Changed("altitude") {
		coord.Altitude = yelp.Float64(*altitude)
	}
	if cf.fs.Changed("altitude-accuracy") {
		coord.AltitudeAccuracy = yelp.Float64(*altitudeAccuracy)
	}
	return c.SearchByCoordinates(ctx, coord, params)
}

func runPhone(ctx context.Context, c *yelp.Client, args []string) (any, error) {
	rest, params, err := newCommandFlags("phone").parse(args, 1)
	if err != nil {
		return nil, err
	}
	return c.PhoneSearch(ctx, rest[0], params)
}
