// Command convinfo prints the configuration and cost of streaming
// convolvers for a set of impulse response lengths.
//
// Usage:
//
//	convinfo [flags] [ir-length ...]
//
// Lengths are sample counts or durations such as 1.5s. Without arguments it
// reports a small range of typical lengths.
//
// Examples:
//
//	convinfo 48000
//	convinfo -mode partitioned -block 128,256,512 96000
//	convinfo -measure -rate 44100 2048 1.5s
//	convinfo -cpu
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/cwbudde/algo-fastconv/dsp/conv"
	"github.com/cwbudde/algo-fastconv/dsp/core"
)

var defaultLengths = []int{64, 1024, 16384, 48000}

type options struct {
	mode     string
	blocks   []int
	rate     float64
	input    int
	measure  bool
	duration time.Duration
}

func main() {
	mode := flag.String("mode", "both", "convolution mode: direct, partitioned or both")
	blocks := flag.String("block", "256", "comma-separated block sizes")
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	input := flag.Int("input", 48000, "input length used for the output size column")
	doMeasure := flag.Bool("measure", false, "time Process on noise and report the real-time factor")
	duration := flag.Duration("duration", 200*time.Millisecond, "time budget per measured configuration")
	showCPU := flag.Bool("cpu", false, "print detected SIMD features and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: convinfo [flags] [ir-length ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints configuration and cost of streaming convolvers.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  convinfo 48000\n")
		fmt.Fprintf(os.Stderr, "  convinfo -mode partitioned -block 128,256,512 96000\n")
		fmt.Fprintf(os.Stderr, "  convinfo -measure 2048 1.5s\n")
	}
	flag.Parse()

	if *showCPU {
		printFeatures(os.Stdout, cpu.DetectFeatures())
		return
	}

	sizes, err := parseInts(*blocks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: -block: %v\n", err)
		os.Exit(2)
	}

	lengths := defaultLengths
	if flag.NArg() > 0 {
		cfg := core.ApplyProcessorOptions(core.WithSampleRate(*rate))
		lengths, err = parseLengths(flag.Args(), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: ir-length: %v\n", err)
			os.Exit(2)
		}
	}

	opts := options{
		mode:     *mode,
		blocks:   sizes,
		rate:     *rate,
		input:    *input,
		measure:  *doMeasure,
		duration: *duration,
	}

	if err := run(os.Stdout, lengths, opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.Atoi(field)
		if err != nil {
			return nil, err
		}
		if v <= 0 {
			return nil, fmt.Errorf("%d is not positive", v)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, errors.New("no values")
	}
	return out, nil
}

// parseLengths accepts IR lengths in samples ("48000") or as durations
// ("1.5s", "300ms") converted at the configured sample rate.
func parseLengths(args []string, cfg core.ProcessorConfig) ([]int, error) {
	out := make([]int, 0, len(args))
	for _, arg := range args {
		if d, err := time.ParseDuration(arg); err == nil {
			n := cfg.Samples(d)
			if n <= 0 {
				return nil, fmt.Errorf("%s is shorter than one sample", arg)
			}
			out = append(out, n)
			continue
		}

		n, err := parseInts(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, n...)
	}
	return out, nil
}

// modesFor expands the -mode flag into the configurations to report.
func modesFor(name string, blocks []int) ([]conv.Mode, error) {
	var modes []conv.Mode
	switch strings.ToLower(name) {
	case "direct":
		modes = append(modes, conv.DirectMode{})
	case "partitioned":
		for _, b := range blocks {
			modes = append(modes, conv.PartitionedMode{BlockSize: b})
		}
	case "both":
		modes = append(modes, conv.DirectMode{})
		for _, b := range blocks {
			modes = append(modes, conv.PartitionedMode{BlockSize: b})
		}
	default:
		return nil, fmt.Errorf("unknown mode %q", name)
	}
	return modes, nil
}

func run(w io.Writer, lengths []int, opts options) error {
	modes, err := modesFor(opts.mode, opts.blocks)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := "IR\tMode\tBlock\tFFT\tPartitions\tTail\tTail [ms]\tOutput\tMACs/sample"
	if opts.measure {
		header += "\tRealtime x"
	}
	if _, err := fmt.Fprintln(tw, header); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	for _, m := range lengths {
		for _, mode := range modes {
			c, err := conv.NewConvolver(make([]float32, m), mode,
				core.WithSampleRate(opts.rate), core.WithBlockSize(reportBlock(mode, opts.blocks)))
			if err != nil {
				return fmt.Errorf("ir %d, %v: %w", m, mode, err)
			}

			row := fmt.Sprintf("%d\t%s\t%d\t%d\t%d\t%d\t%.2f\t%d\t%.1f",
				m, modeName(mode), c.BlockSize(), c.FFTSize(), c.PartitionCount(),
				c.TailLen(), float64(c.TailDuration())/float64(time.Millisecond),
				c.OutputSizeFor(opts.input), costPerSample(c))

			if opts.measure {
				factor, err := measure(c, reportBlock(mode, opts.blocks), opts.rate, opts.duration)
				if err != nil {
					return fmt.Errorf("ir %d, %v: %w", m, mode, err)
				}
				row += fmt.Sprintf("\t%.1f", factor)
			}

			if _, err := fmt.Fprintln(tw, row); err != nil {
				return fmt.Errorf("failed to write output row: %w", err)
			}
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

func modeName(mode conv.Mode) string {
	if _, ok := mode.(conv.PartitionedMode); ok {
		return "partitioned"
	}
	return mode.String()
}

// reportBlock is the block length used to drive a convolver: the fixed block
// in partitioned mode, the first -block value in direct mode.
func reportBlock(mode conv.Mode, blocks []int) int {
	if p, ok := mode.(conv.PartitionedMode); ok {
		return p.BlockSize
	}
	return blocks[0]
}

// costPerSample estimates real multiply-adds per output sample. A complex
// multiply counts as four and a radix-2 transform as 2*N*log2(N).
func costPerSample(c *conv.Convolver) float64 {
	if c.FFTSize() == 0 {
		return float64(c.KernelLen())
	}

	n := float64(c.FFTSize())
	k := float64(c.PartitionCount())
	fft := 2 * n * math.Log2(n)
	return ((k+1)*fft + 4*k*n) / float64(c.BlockSize())
}

// measure runs Process on noise for roughly budget and returns how many
// times faster than real time the convolver ran.
func measure(c *conv.Convolver, block int, rate float64, budget time.Duration) (float64, error) {
	rng := rand.New(rand.NewPCG(1, 0))
	in := make([]float32, block)
	for i := range in {
		in[i] = float32(rng.Float64()*2 - 1)
	}
	out := make([]float32, block)

	var (
		samples int
		elapsed time.Duration
	)
	start := time.Now()
	for elapsed < budget || samples == 0 {
		if err := c.Process(in, out); err != nil {
			return 0, err
		}
		samples += block
		elapsed = time.Since(start)
	}

	audio := float64(samples) / rate
	return audio / elapsed.Seconds(), nil
}

func printFeatures(w io.Writer, f cpu.Features) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Architecture\t%s\n", f.Architecture)
	_, _ = fmt.Fprintf(tw, "SSE2\t%t\n", f.HasSSE2)
	_, _ = fmt.Fprintf(tw, "AVX2\t%t\n", f.HasAVX2)
	_, _ = fmt.Fprintf(tw, "NEON\t%t\n", f.HasNEON)
	_, _ = fmt.Fprintf(tw, "Generic only\t%t\n", f.ForceGeneric)
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
