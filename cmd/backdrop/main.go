// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Command backdrop shows the portfolio backdrop: a
// neural lattice that cross-fades into a DNA helix as
// the page scrolls.
//
// Usage:
//
//	backdrop [-mode window|term|headless] [-config file.yaml] [flags]
//
// In the window and terminal viewers, the arrow keys and
// the mouse wheel scroll the page, keys 1 to 9 jump to its
// sections and q quits.
//
// The configuration file can also be given by the
// BACKDROP_CONFIG environment variable, which may be
// set in a .env file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/gviegas/backdrop/config"
)

var (
	configPath  = flag.String("config", "", "YAML configuration `file` (overrides BACKDROP_CONFIG)")
	mode        = flag.String("mode", "window", "viewer: window, term or headless")
	frames      = flag.Int("frames", 120, "number of frames to render in headless mode")
	outDir      = flag.String("out", "", "`directory` where headless mode writes PNG frames")
	scrollTo    = flag.Float64("scroll-to", -1, "scroll offset reached by the last headless frame (negative scrolls to the bottom)")
	gltfPath    = flag.String("gltf", "", "export the last headless frame as glTF (.gltf or .glb) `file`")
	seed        = flag.Int64("seed", 0, "random seed (0 uses BACKDROP_SEED or the current time)")
	printConfig = flag.Bool("print-config", false, "print the effective configuration and exit")
)

func main() {
	klog.InitFlags(nil)
	flag.Set("logtostderr", "true")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})
	flag.Parse()

	err := run()
	klog.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, "backdrop:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(errors.Cause(err)) {
		klog.Warningf("backdrop: .env: %v", err)
	}

	path := *configPath
	if path == "" {
		path = os.Getenv("BACKDROP_CONFIG")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if *printConfig {
		return cfg.Encode(os.Stdout)
	}

	s, err := resolveSeed(*seed)
	if err != nil {
		return err
	}
	klog.V(1).Infof("backdrop: mode %s, seed %d", *mode, s)

	a := newApp(cfg, s, cfg.Viewer.Width, cfg.Viewer.Height)
	if err := a.init(); err != nil {
		return err
	}
	defer a.close()

	switch *mode {
	case "window":
		return runWindow(a)
	case "term":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return runTerm(ctx, a)
	case "headless":
		return runHeadless(a, headlessOpts{
			frames:   *frames,
			out:      *outDir,
			scrollTo: *scrollTo,
			gltf:     *gltfPath,
		})
	}
	return errors.Errorf("unknown mode %q", *mode)
}

// resolveSeed returns s if it is not zero, then the
// value of BACKDROP_SEED, then the current time.
func resolveSeed(s int64) (int64, error) {
	if s != 0 {
		return s, nil
	}
	if env := os.Getenv("BACKDROP_SEED"); env != "" {
		v, err := strconv.ParseInt(env, 10, 64)
		if err != nil {
			return 0, errors.Wrap(err, "BACKDROP_SEED")
		}
		return v, nil
	}
	return time.Now().UnixNano(), nil
}
