package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/catacombing/epitaph/internal/config"
	"github.com/catacombing/epitaph/internal/geometry"
	"github.com/catacombing/epitaph/internal/ipc"
	"github.com/catacombing/epitaph/internal/module"
	"github.com/catacombing/epitaph/internal/modules"
	"github.com/catacombing/epitaph/internal/shell"
	"github.com/catacombing/epitaph/internal/surface/emulator"
)

var (
	configPath string

	outputWidth  int
	outputHeight int
	outputScale  float64
)

var rootCmd = &cobra.Command{
	Use:   "epitaph",
	Short: "Status panel and pull-down drawer for the Catacomb compositor",
	RunE:  runShell,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file path")
	rootCmd.Flags().IntVar(&outputWidth, "width", 360, "output width in logical pixels")
	rootCmd.Flags().IntVar(&outputHeight, "height", 720, "output height in logical pixels")
	rootCmd.Flags().Float64Var(&outputScale, "output-scale", 2, "output scale factor")
	rootCmd.AddCommand(statusCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runShell(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	store, err := config.NewStore(configPath)
	if err != nil {
		return err
	}
	if err := store.Watch(ctx); err != nil {
		log.Printf("Config watching disabled: %v", err)
	}

	compositor := ipc.New()
	registry := module.NewRegistry(modules.Build(store.Get().EnabledModules(), compositor)...)

	emu := emulator.New(emulator.Options{
		Size:        geometry.NewSize(outputWidth, outputHeight),
		Scale:       outputScale,
		PanelHeight: store.Get().Layout.PanelHeight,
	})

	buildModule := func(id string) (module.Module, bool) {
		return modules.New(id, compositor)
	}

	loop := shell.NewLoop()
	sh, err := shell.New(loop, store, registry, emu.Panel(), emu.Drawer(), compositor, buildModule)
	if err != nil {
		return err
	}

	errs := make(chan error, 1)
	go func() { errs <- sh.Run(ctx) }()

	// The windowing backend owns the main goroutine; the shell loop runs
	// beside it and the two only talk through handlers and surfaces.
	if err := emu.Run(ctx, sh.PanelHandler(), sh.DrawerHandler()); err != nil {
		return err
	}
	cancel()
	return <-errs
}
