// Package main implements the nescore NES emulator executable.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"

	"nescore/internal/cartridge"
	"nescore/internal/console"
	"nescore/internal/graphics"
	"nescore/internal/version"
)

type optionFlags struct {
	rom        string
	frames     uint64
	screenshot string

	headless bool
	trace    bool
	debug    bool
	quiet    bool
	version  bool
}

func main() {
	ctx := app.Context()
	options := readArguments()

	if options.version {
		fmt.Printf("nescore version %s\n", version.Full())
		return
	}

	logger := createLogger(options.debug, options.quiet)
	if !options.quiet {
		fmt.Printf("nescore - NES emulator\nversion: %s\n\n", version.Full())
	}

	if err := run(ctx, logger, options); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Emulation cancelled")
			return
		}
		logger.Fatal(err.Error())
	}
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.StringVar(&options.rom, "rom", "", "path of the iNES ROM file to run")
	flags.Uint64Var(&options.frames, "frames", 0, "number of frames to emulate in headless or trace mode")
	flags.StringVar(&options.screenshot, "screenshot", "", "write the final frame to this PPM file")
	flags.BoolVar(&options.headless, "headless", false, "run without a window")
	flags.BoolVar(&options.trace, "trace", false, "print a CPU trace line per executed instruction")
	flags.BoolVar(&options.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&options.quiet, "quiet", false, "perform operations quietly")
	flags.BoolVar(&options.version, "version", false, "show version information")

	_ = flags.Parse(os.Args[1:])

	// The ROM can also be passed as a bare argument.
	if options.rom == "" && len(flags.Args()) > 0 {
		options.rom = flags.Args()[0]
	}
	if options.rom == "" && !options.version {
		fmt.Printf("usage: nescore [options] <rom file>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}

	return options
}

func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func run(ctx context.Context, logger *log.Logger, options optionFlags) error {
	cart, err := cartridge.LoadFile(options.rom)
	if err != nil {
		return err
	}
	logger.Debug("cartridge loaded",
		log.String("rom", options.rom),
		log.String("mirroring", cart.Mirroring().String()),
		log.String("prg", fmt.Sprintf("%d KB", cart.PRGSize()/1024)),
		log.String("chr", fmt.Sprintf("%d KB", cart.CHRSize()/1024)))

	c := console.New(cart, logger)

	switch {
	case options.trace:
		return runTrace(ctx, c, options.frames)
	case options.headless:
		return runHeadless(ctx, logger, c, options)
	default:
		title := "nescore - " + filepath.Base(options.rom)
		return graphics.Run(c, title)
	}
}

// runTrace prints one line per executed instruction until the requested
// number of frames has been rendered.
func runTrace(ctx context.Context, c *console.Console, frames uint64) error {
	if frames == 0 {
		frames = 1
	}
	for c.Frames() < frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Println(c.CPU().TraceLine())
		c.Step()
	}
	return nil
}

func runHeadless(ctx context.Context, logger *log.Logger, c *console.Console, options optionFlags) error {
	frames := options.frames
	if frames == 0 {
		frames = 60
	}

	if err := c.RunFrames(ctx, frames); err != nil {
		return err
	}
	logger.Info("emulation finished",
		log.String("frames", fmt.Sprintf("%d", c.Frames())))

	if options.screenshot != "" {
		if err := graphics.SaveFramePPM(options.screenshot, c.Frame()); err != nil {
			return fmt.Errorf("writing screenshot: %w", err)
		}
		logger.Info("screenshot written", log.String("file", options.screenshot))
	}
	return nil
}
