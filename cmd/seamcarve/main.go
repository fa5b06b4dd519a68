package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/seamcarve/seamcarve"
	"github.com/seamcarve/seamcarve/utils"
	"golang.org/x/term"
)

const helpBanner = `
┌─┐┌─┐┌─┐┌┬┐┌─┐┌─┐┬─┐┬  ┬┌─┐
└─┐├┤ ├─┤│││  │  ├─┤├┬┘└┐┌┘├┤
└─┘└─┘┴ ┴┴ ┴└─┘└─┘┴ ┴┴└─ └┘ └─┘

Content aware image reduction.
    Version: %s

Usage: seamcarve [flags] <image_path>

`

// defaultOutput is the file the resized image is saved to.
const defaultOutput = "resizeImg.jpeg"

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// Version indicates the current build version.
var Version string

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run executes the command line application and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	utils.NoColor = !isTerminal(stderr)

	flags := flag.NewFlagSet("seamcarve", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		output     = flags.String("out", "", "Destination (default \""+defaultOutput+"\")")
		quality    = flags.Int("quality", 0, "JPEG quality (default 100)")
		configPath = flags.String("config", "", "Configuration file")
		verbose    = flags.Bool("v", false, "Verbose logging")
	)
	flags.Usage = func() {
		fmt.Fprintf(stderr, helpBanner, Version)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if flags.NArg() != 1 {
		flags.Usage()
		fmt.Fprintln(stderr, utils.DecorateText("\nPlease provide the source image path!", utils.ErrorMessage))
		return exitUsage
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		printError(stderr, err)
		return exitFailure
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *quality != 0 {
		cfg.Quality = *quality
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.validate(); err != nil {
		printError(stderr, err)
		return exitFailure
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: utils.NoColor, TimeFormat: time.TimeOnly}).
		Level(cfg.level()).
		With().
		Timestamp().
		Logger()

	width, height, err := promptSize(stdin, stdout)
	if err != nil {
		printError(stderr, err)
		return exitFailure
	}
	// A zero size would leave the axis untouched in the processor.
	if width < 1 || height < 1 {
		printError(stderr, fmt.Errorf("%w: %dx%d, both dimensions must be at least 1",
			seamcarve.ErrInvalidTarget, width, height))
		return exitFailure
	}

	proc := &seamcarve.Processor{
		NewWidth:  width,
		NewHeight: height,
		Logger:    &logger,
	}
	op := &seamcarve.Ops{
		Src:     flags.Arg(0),
		Dst:     cfg.Output,
		Quality: cfg.Quality,
	}

	// Show the progress indicator only on interactive terminals.
	var spinner *utils.Spinner
	if isTerminal(stderr) {
		spinner = newSpinner(stderr, proc)
		spinner.Start()
	}

	now := time.Now()
	err = op.Execute(ctx, proc)

	if spinner != nil {
		spinner.StopMsg = stopMessage(err)
		spinner.Stop()
	}
	if err != nil {
		printError(stderr, err)
		return exitFailure
	}

	fmt.Fprintf(stderr, "\nThe resized image has been saved as: %s\n",
		utils.DecorateText(filepath.Base(cfg.Output), utils.SuccessMessage),
	)
	fmt.Fprintf(stderr, "Execution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage),
	)
	return exitOK
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// promptSize asks for the new image width and height.
func promptSize(stdin io.Reader, stdout io.Writer) (int, int, error) {
	r := bufio.NewReader(stdin)

	width, err := promptInt(r, stdout, "Enter new width: ")
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width: %w", err)
	}
	height, err := promptInt(r, stdout, "Enter new height: ")
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height: %w", err)
	}
	return width, height, nil
}

func promptInt(r io.Reader, w io.Writer, msg string) (int, error) {
	var n int

	fmt.Fprint(w, msg)
	if _, err := fmt.Fscan(r, &n); err != nil {
		return 0, err
	}
	return n, nil
}

// newSpinner returns a progress indicator which follows the seam removal.
func newSpinner(w io.Writer, proc *seamcarve.Processor) *utils.Spinner {
	msg := func(s string) string {
		return fmt.Sprintf("%s %s",
			utils.DecorateText("⚡ SEAMCARVE", utils.StatusMessage),
			utils.DecorateText(s, utils.DefaultMessage),
		)
	}
	spinner := utils.NewSpinner(w, msg("⇢ resizing image (be patient, it may take a while)..."), 80*time.Millisecond, true)

	proc.OnSeam = func(p seamcarve.Progress) {
		perc := utils.Min(p.Done*100/p.Total, 100)
		spinner.SetMessage(msg(fmt.Sprintf("⇢ reducing the image %s, seam %d/%d (%d%%)", p.Axis, p.Done, p.Total, perc)))
	}
	return spinner
}

func stopMessage(err error) string {
	if err != nil {
		return fmt.Sprintf("%s %s %s",
			utils.DecorateText("⚡ SEAMCARVE", utils.StatusMessage),
			utils.DecorateText("resizing image failed...", utils.DefaultMessage),
			utils.DecorateText("✘", utils.ErrorMessage),
		)
	}
	return fmt.Sprintf("%s %s %s",
		utils.DecorateText("⚡ SEAMCARVE", utils.StatusMessage),
		utils.DecorateText("⇢", utils.DefaultMessage),
		utils.DecorateText("the image has been resized successfully ✔", utils.SuccessMessage),
	)
}

// printError displays the reason of a failed run.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s%s",
		utils.DecorateText("\nError resizing the image:", utils.ErrorMessage),
		utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err), utils.DefaultMessage),
	)
}
