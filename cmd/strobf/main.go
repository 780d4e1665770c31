// Command strobf obfuscates a plaintext string into a standalone decoder
// program in one of several target languages.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/54754N4/strobf"
	"github.com/54754N4/strobf/emit"
	"github.com/54754N4/strobf/runopts"
	"github.com/54754N4/strobf/tui"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		target     string
		minOps     int
		maxOps     int
		maxBits    int
		input      string
		file       string
		stdin      bool
		seed       int64
		seedPhrase string
		count      int
		inspect    bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "strobf",
		Short: "Polymorphic string obfuscator: emits a standalone decoder for a plaintext string",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, input, file, stdin)
			if err != nil {
				return err
			}

			var opts []runopts.Option
			switch {
			case seedPhrase != "":
				opts = append(opts, runopts.WithSeedPhrase(seedPhrase))
			case seed != 0:
				opts = append(opts, runopts.WithSeed(seed))
			}
			if verbose {
				opts = append(opts, runopts.WithVerboseRetry())
			}

			engine := strobf.New(minOps, maxOps, uint(maxBits), opts...)

			if inspect {
				ctx, err := engine.Transform(text)
				if err != nil {
					return err
				}
				b, err := emit.ByName(target, nil)
				if err != nil {
					return err
				}
				rendered, err := emit.Emit(ctx, b)
				if err != nil {
					return err
				}
				return tui.Inspect(ctx, rendered)
			}

			if count <= 1 {
				out, err := emitOnce(engine, target, text)
				if err != nil {
					return err
				}
				fmt.Println(out)
				return nil
			}
			return emitMany(minOps, maxOps, uint(maxBits), opts, target, text, count)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&target, "target", "", fmt.Sprintf("target language (%s)", strings.Join(emit.Targets, ", ")))
	flags.IntVar(&minOps, "min-ops", 8, "minimum number of transforms per chain")
	flags.IntVar(&maxOps, "max-ops", 10, "maximum number of transforms per chain")
	flags.IntVar(&maxBits, "max-bits", 16, "bit width of the transform arithmetic")
	flags.StringVar(&input, "input", "", "plaintext given directly on the command line")
	flags.StringVar(&file, "file", "", "path to a file containing the plaintext")
	flags.BoolVar(&stdin, "stdin", false, "read the plaintext from standard input")
	flags.Int64Var(&seed, "seed", 0, "deterministic RNG seed (0 means non-reproducible)")
	flags.StringVar(&seedPhrase, "seed-phrase", "", "derive a deterministic RNG seed from a memorable phrase")
	flags.IntVar(&count, "count", 1, "number of independent snippets to emit concurrently")
	flags.BoolVar(&inspect, "inspect", false, "open the chain inspector instead of printing to standard output")
	flags.BoolVar(&verbose, "verbose", false, "log each rejected chain-generation attempt")
	cmd.MarkFlagRequired("target")

	return cmd.Execute()
}

// readInput resolves exactly one of --input, --file, --stdin into the
// plaintext to obfuscate.
func readInput(cmd *cobra.Command, input, file string, stdin bool) (string, error) {
	set := 0
	for _, v := range []bool{input != "", file != "", stdin} {
		if v {
			set++
		}
	}
	if set != 1 {
		return "", fmt.Errorf("strobf: exactly one of --input, --file, --stdin must be given")
	}

	switch {
	case input != "":
		return input, nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("strobf: reading --file: %w", err)
		}
		return string(b), nil
	default:
		r := bufio.NewReader(cmd.InOrStdin())
		b, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("strobf: reading --stdin: %w", err)
		}
		return strings.TrimRight(string(b), "\n"), nil
	}
}

func emitOnce(engine strobf.Engine, target, text string) (string, error) {
	ctx, err := engine.Transform(text)
	if err != nil {
		return "", err
	}
	b, err := emit.ByName(target, nil)
	if err != nil {
		return "", err
	}
	return emit.Emit(ctx, b)
}

// emitMany renders count independent snippets concurrently. Each goroutine
// gets its own Engine seeded from a sequentially-drawn value, since
// math/rand.Rand (and hence strobf.Engine) is not safe for concurrent use
// by multiple goroutines.
func emitMany(minOps, maxOps int, bits uint, baseOpts []runopts.Option, target, text string, count int) error {
	seeder := rand.New(rand.NewSource(rand.Int63()))
	out := make([]string, count)
	var g errgroup.Group
	for i := 0; i < count; i++ {
		i := i
		workerOpts := append(append([]runopts.Option(nil), baseOpts...), runopts.WithSeed(seeder.Int63()))
		g.Go(func() error {
			engine := strobf.New(minOps, maxOps, bits, workerOpts...)
			s, err := emitOnce(engine, target, text)
			if err != nil {
				return err
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Println(strings.Join(out, "\n\n"))
	return nil
}
