// Command sandbox runs the engine against a headless window with scripted input, and reports what the event bus did.
package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/saylorsolutions/nain/app"
	"github.com/saylorsolutions/nain/config"
	"github.com/saylorsolutions/nain/eventmetrics"
	"github.com/saylorsolutions/nain/events"
	"github.com/saylorsolutions/nain/logging"
	"github.com/saylorsolutions/nain/window"
	flag "github.com/spf13/pflag"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"log/slog"
	"os"
	"syscall"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("sandbox", flag.ContinueOnError)
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	conf, err := config.Load(fs, config.OSEnv())
	if err != nil {
		return err
	}
	log, err := logging.Init(conf.Log)
	if err != nil {
		return err
	}

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			log.Error("Failed to shut down meter provider", "error", err)
		}
	}()
	observer, err := eventmetrics.New(provider)
	if err != nil {
		return err
	}
	events.Init(events.WithLogger(log), events.WithObserver(observer))
	defer events.Shutdown()

	ctx, cancel := app.SignalContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	win := window.NewHeadless(window.PropsFromConfig(conf.Window), conf.Bus, window.WithLogger(log))
	defer win.Close()

	stack := new(app.LayerStack).
		PushLayer(&scriptLayer{win: win, script: demoScript()}).
		PushLayer(&gameLayer{}).
		PushOverlay(&inputOverlay{})

	log.Info("Starting sandbox", "bus", conf.Bus, "frames", conf.Frames, "frame_time", conf.FrameTime)
	reason, err := app.Run(ctx, conf, stack, win, app.WithLogger(log))
	if err != nil {
		return err
	}

	totals, err := eventmetrics.Collect(context.Background(), reader)
	if err != nil {
		return err
	}
	attrs := []any{"reason", string(reason), "unknown_bus", totals.UnknownBus}
	for _, kind := range events.Kinds() {
		if n := totals.Dispatches[kind.String()]; n > 0 {
			attrs = append(attrs, slog.Int64(kind.String(), n))
		}
	}
	log.Info("Event totals", attrs...)
	return nil
}
