package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	ui512 "github.com/shabbyrobe/go-ui512"
)

// This times each kernel operation on every selected backend. Operands come
// from the package LCG, so two runs with the same seed use the same numbers on
// every machine. With -parity, every backend's results are also compared to
// the scalar backend's and the first mismatch is reported.

const usage = `Kernel timing

Usage: timing [-iter N] [-seed S] [-op add,rsh] [-backend wide] [-parity] [-dump] [-v]

Flags that are not given on the command line can be set from the environment
with a UI512_ prefix, i.e. UI512_ITER=100000.
`

const envPrefix = "UI512_"

// operandPool bounds the number of distinct operand pairs per op.
const operandPool = 1024

func main() {
	if err := run(os.Args[1:], os.Getenv, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type config struct {
	Iterations int
	Seed       uint64
	Ops        []string
	Backends   []string
	Parity     bool
	Dump       bool
	Verbose    bool
}

type envOverride struct {
	envKey string
	flag   string
	apply  func(*config, string) error
}

var envOverrides = []envOverride{
	{"ITER", "iter", func(c *config, v string) (err error) {
		c.Iterations, err = strconv.Atoi(v)
		return err
	}},
	{"SEED", "seed", func(c *config, v string) (err error) {
		c.Seed, err = strconv.ParseUint(v, 10, 64)
		return err
	}},
	{"OP", "op", func(c *config, v string) error {
		c.Ops = splitList(v)
		return nil
	}},
	{"BACKEND", "backend", func(c *config, v string) error {
		c.Backends = splitList(v)
		return nil
	}},
	{"PARITY", "parity", func(c *config, v string) (err error) {
		c.Parity, err = strconv.ParseBool(v)
		return err
	}},
	{"DUMP", "dump", func(c *config, v string) (err error) {
		c.Dump, err = strconv.ParseBool(v)
		return err
	}},
	{"VERBOSE", "v", func(c *config, v string) (err error) {
		c.Verbose, err = strconv.ParseBool(v)
		return err
	}},
}

func splitList(v string) (out []string) {
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseConfig(args []string, getenv func(string) string, out io.Writer) (config, error) {
	cfg := config{Iterations: 100000}
	var ops, backends string

	fs := flag.NewFlagSet("timing", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprint(out, usage)
		fs.PrintDefaults()
	}
	fs.IntVar(&cfg.Iterations, "iter", cfg.Iterations, "Calls to time per op and backend")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "LCG seed for operands (0 == default seed)")
	fs.StringVar(&ops, "op", "", "Comma separated ops to time (default all)")
	fs.StringVar(&backends, "backend", "", "Comma separated backends to time (default all)")
	fs.BoolVar(&cfg.Parity, "parity", false, "Compare every backend against scalar")
	fs.BoolVar(&cfg.Dump, "dump", false, "Dump the first operands and result of each op")
	fs.BoolVar(&cfg.Verbose, "v", false, "Debug logging")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	cfg.Ops, cfg.Backends = splitList(ops), splitList(backends)

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	for _, o := range envOverrides {
		v := getenv(envPrefix + o.envKey)
		if v == "" || set[o.flag] {
			continue
		}
		if err := o.apply(&cfg, v); err != nil {
			return cfg, fmt.Errorf("timing: invalid %s%s %q: %w", envPrefix, o.envKey, v, err)
		}
	}

	if cfg.Iterations <= 0 {
		return cfg, fmt.Errorf("timing: -iter must be positive, found %d", cfg.Iterations)
	}
	return cfg, nil
}

type operands struct {
	x, y ui512.U512
	n    uint
	v    uint64
}

// timedOp writes its 512-bit result to dest and returns the op's scalar
// result (carry, borrow, comparison, bit position or error flag), so parity
// checks see both.
type timedOp struct {
	name string
	fn   func(k ui512.Kernel, dest *ui512.U512, in *operands) uint64
}

func errFlag(err error) uint64 {
	if err != nil {
		return 1
	}
	return 0
}

var timedOps = []timedOp{
	{"add", func(k ui512.Kernel, d *ui512.U512, in *operands) uint64 { return k.Add(d, &in.x, &in.y) }},
	{"add64", func(k ui512.Kernel, d *ui512.U512, in *operands) uint64 { return k.AddUint64(d, &in.x, in.v) }},
	{"sub", func(k ui512.Kernel, d *ui512.U512, in *operands) uint64 { return k.Sub(d, &in.x, &in.y) }},
	{"sub64", func(k ui512.Kernel, d *ui512.U512, in *operands) uint64 { return k.SubUint64(d, &in.x, in.v) }},
	{"and", func(k ui512.Kernel, d *ui512.U512, in *operands) uint64 { k.And(d, &in.x, &in.y); return 0 }},
	{"or", func(k ui512.Kernel, d *ui512.U512, in *operands) uint64 { k.Or(d, &in.x, &in.y); return 0 }},
	{"xor", func(k ui512.Kernel, d *ui512.U512, in *operands) uint64 { k.Xor(d, &in.x, &in.y); return 0 }},
	{"not", func(k ui512.Kernel, d *ui512.U512, in *operands) uint64 { k.Not(d, &in.x); return 0 }},
	{"lsh", func(k ui512.Kernel, d *ui512.U512, in *operands) uint64 { k.Lsh(d, &in.x, in.n); return 0 }},
	{"rsh", func(k ui512.Kernel, d *ui512.U512, in *operands) uint64 { k.Rsh(d, &in.x, in.n); return 0 }},
	{"cmp", func(k ui512.Kernel, d *ui512.U512, in *operands) uint64 {
		return uint64(k.Compare(&in.x, &in.y) + 1)
	}},
	{"msb", func(k ui512.Kernel, d *ui512.U512, in *operands) uint64 {
		return uint64(k.MostSignificantBit(&in.x) + 1)
	}},
	{"lsb", func(k ui512.Kernel, d *ui512.U512, in *operands) uint64 {
		return uint64(k.LeastSignificantBit(&in.x) + 1)
	}},
	{"mul", func(k ui512.Kernel, d *ui512.U512, in *operands) uint64 { k.Mul(d, nil, &in.x, &in.y); return 0 }},
	{"div", func(k ui512.Kernel, d *ui512.U512, in *operands) uint64 {
		return errFlag(k.Divide(d, nil, &in.x, &in.y))
	}},
	{"rem", func(k ui512.Kernel, d *ui512.U512, in *operands) uint64 {
		return errFlag(k.Divide(nil, d, &in.x, &in.y))
	}},
}

func selectOps(names []string) ([]timedOp, error) {
	if len(names) == 0 {
		return timedOps, nil
	}
	var out []timedOp
	for _, name := range names {
		found := false
		for _, op := range timedOps {
			if op.name == name {
				out = append(out, op)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("timing: unknown op %q", name)
		}
	}
	return out, nil
}

func selectBackends(names []string) ([]ui512.Backend, error) {
	if len(names) == 0 {
		return ui512.Backends(), nil
	}
	var out []ui512.Backend
	for _, name := range names {
		b := ui512.BackendByName(name)
		if b == nil {
			return nil, fmt.Errorf("timing: unknown backend %q", name)
		}
		out = append(out, b)
	}
	return out, nil
}

// makeOperands draws the operand pool. The divisor is shortened by a random
// number of bits so that every division path gets exercised.
func makeOperands(seed uint64, count int) []operands {
	src := ui512.NewLCG(seed)
	pool := make([]operands, count)
	for i := range pool {
		in := &pool[i]
		in.x = ui512.RandU512(src)
		in.y = ui512.RandU512(src).Rsh(uint(src.Uint64() % 512))
		if in.y.IsZero() {
			in.y = ui512.U512From64(1)
		}
		in.n = uint(src.Uint64() % 520)
		in.v = src.Uint64()
	}
	return pool
}

type timing struct {
	backend string
	op      string
	elapsed time.Duration
	sink    uint64
}

func timeBackend(ctx context.Context, k ui512.Kernel, ops []timedOp, pool []operands, iter int) ([]timing, error) {
	out := make([]timing, 0, len(ops))
	var dest ui512.U512
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var sink uint64
		start := time.Now()
		for i := 0; i < iter; i++ {
			sink += op.fn(k, &dest, &pool[i%len(pool)])
		}
		out = append(out, timing{backend: k.Name(), op: op.name, elapsed: time.Since(start), sink: sink})
	}
	return out, nil
}

func checkParity(ops []timedOp, backends []ui512.Backend, pool []operands) error {
	ref := ui512.Kernel{Backend: ui512.Scalar}
	for _, op := range ops {
		for i := range pool {
			in := &pool[i]
			var expected ui512.U512
			expectedRet := op.fn(ref, &expected, in)

			for _, b := range backends {
				if b == ui512.Scalar {
					continue
				}
				var result ui512.U512
				ret := op.fn(ui512.Kernel{Backend: b}, &result, in)
				if result != expected || ret != expectedRet {
					return fmt.Errorf("timing: %s on %s disagrees with scalar for operand %d:\n%s",
						op.name, b.Name(), i, spew.Sdump(in, expected, expectedRet, result, ret))
				}
			}
		}
	}
	return nil
}

func run(args []string, getenv func(string) string, out io.Writer) error {
	cfg, err := parseConfig(args, getenv, out)
	if err != nil {
		return err
	}

	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	ops, err := selectOps(cfg.Ops)
	if err != nil {
		return err
	}
	backends, err := selectBackends(cfg.Backends)
	if err != nil {
		return err
	}

	features := zerolog.Dict()
	for name, ok := range ui512.CPUFeatures() {
		features.Bool(name, ok)
	}
	log.Info().
		Str("default", ui512.DefaultBackend().Name()).
		Dict("cpu", features).
		Int("iter", cfg.Iterations).
		Uint64("seed", cfg.Seed).
		Msg("starting")

	poolSize := cfg.Iterations
	if poolSize > operandPool {
		poolSize = operandPool
	}
	pool := makeOperands(cfg.Seed, poolSize)

	if cfg.Dump {
		ref := ui512.Kernel{Backend: ui512.Scalar}
		for _, op := range ops {
			var result ui512.U512
			ret := op.fn(ref, &result, &pool[0])
			fmt.Fprintf(out, "%s:\n%s", op.name, spew.Sdump(pool[0], result, ret))
		}
	}

	if cfg.Parity {
		if err := checkParity(ops, backends, pool); err != nil {
			return err
		}
		log.Info().Int("operands", len(pool)).Int("backends", len(backends)).Msg("parity ok")
	}

	// Every goroutine has its own destination; the operand pool is only read.
	results := make([][]timing, len(backends))
	g, ctx := errgroup.WithContext(context.Background())
	for i, b := range backends {
		i := i
		k := ui512.Kernel{Backend: b}
		g.Go(func() error {
			log.Debug().Str("backend", k.Name()).Msg("timing")
			res, err := timeBackend(ctx, k, ops, pool, cfg.Iterations)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, res := range results {
		for _, r := range res {
			log.Info().
				Str("backend", r.backend).
				Str("op", r.op).
				Float64("ns_op", float64(r.elapsed.Nanoseconds())/float64(cfg.Iterations)).
				Uint64("sink", r.sink).
				Msg("timed")
		}
	}
	return nil
}
