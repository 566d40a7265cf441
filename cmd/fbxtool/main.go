// fbxtool converts FBX scene documents into render trees and glTF
// exports, and re-runs conversions while watching a directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/fbxscene/internal/config"
	"github.com/Faultbox/fbxscene/internal/export"
	"github.com/Faultbox/fbxscene/internal/logger"
	"github.com/Faultbox/fbxscene/internal/sample"
	"github.com/Faultbox/fbxscene/internal/watch"
	"github.com/Faultbox/fbxscene/pkg/asset"
	"github.com/Faultbox/fbxscene/pkg/scene"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := config.Args()
	command := "demo"
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	switch command {
	case "demo":
		cmdDemo(cfg, log)
	case "export":
		cmdExport(cfg, log, args)
	case "watch":
		cmdWatch(cfg, log, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`fbxtool - FBX scene conversion toolkit

Usage:
  fbxtool [flags] <command> [args]

Commands:
  demo            Convert the built-in showcase document and print the scene
  export [name]   Convert the showcase document and write a glTF export
  watch [dir]     Materialize the showcase textures into dir and re-convert
                  whenever a file there changes
  help            Show this help

Flags:
  -config <path>          Alternate config file
  -debug                  Debug logging
  -out <dir>              Output directory for exports
  -format <gltf|glb>      Export container
  -texture-dir <dir>      Read external textures from dir
  -no-external-textures   Resolve only embedded texture clips
  -unit-scale <factor>    Override the document's unit scale factor

Examples:
  fbxtool demo
  fbxtool -format glb export crate
  fbxtool -debug watch ./assets`)
}

// convert runs the showcase document through the conversion pipeline.
func convert(ctx context.Context, cfg *config.Config, log *zap.Logger) (*scene.Scene, *scene.Tree, *asset.MemoryRegistry, error) {
	registry := asset.NewMemoryRegistry()
	sc, tree, err := scene.Load(ctx, sample.Document(), scene.Options{
		Files:           textureFiles(cfg),
		UnitScaleFactor: cfg.Convert.UnitScale,
		Registry:        registry,
		Logger:          log,
	})
	return sc, tree, registry, err
}

// textureFiles picks where external texture reads resolve from: a
// configured directory, the built-in showcase files, or nowhere.
func textureFiles(cfg *config.Config) fs.FS {
	if !cfg.Convert.ExternalTextures {
		return nil
	}
	if dir := cfg.Convert.TextureDir; dir != "" {
		return os.DirFS(dir)
	}
	return sample.Files()
}

func cmdDemo(cfg *config.Config, log *zap.Logger) {
	sc, tree, registry, err := convert(context.Background(), cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v (%s)\n", err, scene.KindOf(err))
		os.Exit(1)
	}

	fmt.Println("Scene tree:")
	printTree(tree.Root, 1)
	fmt.Println()
	printStats(sc, registry)
}

func printTree(node *scene.TreeNode, depth int) {
	suffix := ""
	if !node.Mesh.IsZero() {
		suffix = "  [mesh]"
	}
	fmt.Printf("%s%s%s\n", strings.Repeat("  ", depth), node.Name, suffix)
	for _, child := range node.Children {
		printTree(child, depth+1)
	}
}

func printStats(sc *scene.Scene, registry *asset.MemoryRegistry) {
	fmt.Printf("Nodes:     %d\n", len(sc.Hierarchy))
	fmt.Printf("Meshes:    %d\n", len(sc.Meshes))
	fmt.Printf("Materials: %d\n", len(sc.Materials))
	fmt.Printf("Textures:  %d\n", len(sc.Textures))
	fmt.Printf("Assets:    %d\n", registry.Len())
	hits, misses := registry.Stats()
	fmt.Printf("Lookups:   %d hits, %d misses\n", hits, misses)

	labels := make([]string, 0, len(sc.PrimitiveLabels))
	byLabel := make(map[string]asset.Handle, len(sc.PrimitiveLabels))
	for h, label := range sc.PrimitiveLabels {
		labels = append(labels, label)
		byLabel[label] = h
	}
	sort.Strings(labels)

	fmt.Println()
	fmt.Println("Primitives:")
	for _, label := range labels {
		value, ok := registry.Get(byLabel[label])
		if !ok {
			continue
		}
		prim, ok := value.(*scene.Primitive)
		if !ok {
			continue
		}
		b := prim.Bounds
		fmt.Printf("  %-32s %5d indices  bounds [%.2f %.2f %.2f] .. [%.2f %.2f %.2f]\n",
			label, len(prim.Indices),
			b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
	}
}

func cmdExport(cfg *config.Config, log *zap.Logger, args []string) {
	format, err := export.ParseFormat(cfg.Export.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	name := "showcase"
	if len(args) > 0 {
		name = args[0]
	}

	sc, tree, registry, err := convert(context.Background(), cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v (%s)\n", err, scene.KindOf(err))
		os.Exit(1)
	}

	path := export.OutputPath(cfg.Export.OutDir, name, format)
	if err := export.Write(sc, tree, registry, path, export.Options{Format: format, Logger: log}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported: %s\n", path)
}

func cmdWatch(cfg *config.Config, log *zap.Logger, args []string) {
	dir := "fbxtool-watch"
	if len(args) > 0 {
		dir = args[0]
	}
	if err := sample.WriteFiles(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	format, err := export.ParseFormat(cfg.Export.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Conversions read their external textures from the watched directory.
	cfg.Convert.TextureDir = dir
	cfg.Convert.ExternalTextures = true

	run := func() {
		sc, tree, registry, err := convert(context.Background(), cfg, log)
		if err != nil {
			log.Error("conversion failed",
				zap.Error(err), zap.Stringer("kind", scene.KindOf(err)))
			return
		}
		path := export.OutputPath(cfg.Export.OutDir, "showcase", format)
		if err := export.Write(sc, tree, registry, path, export.Options{Format: format, Logger: log}); err != nil {
			log.Error("export failed", zap.Error(err))
			return
		}
		log.Info("converted and exported", zap.String("path", path))
	}
	run()

	// Texture edits come in under any name, so no extension filter here.
	w, err := watch.New(dir, cfg.Watch.Debounce, nil, func(paths []string) {
		log.Info("sources changed", zap.Strings("paths", paths))
		run()
	}, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching %s (Ctrl-C to stop)\n", dir)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
