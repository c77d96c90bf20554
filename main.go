package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rampbox/common"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	strategy := flag.String("strategy", "", "movement strategy: tangent, axis or velocity (default from prefabs/box.yaml)")
	watch := flag.Bool("watch", false, "reload prefabs/*.yaml when they change")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	logger, err := common.NewLogger(*debug)
	if err != nil {
		log.Fatal(err)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	opts := Options{Strategy: *strategy, Watch: *watch}
	if err := run(logger, opts); err != nil {
		logger.Fatal("rampbox exited", zap.Error(err))
	}
}

func run(logger *zap.Logger, opts Options) error {
	defer func() { _ = logger.Sync() }()

	game, err := NewGame(logger, opts)
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetWindowSize(game.width, game.height)
	ebiten.SetWindowTitle("rampbox")
	ebiten.SetTPS(game.tps)

	return ebiten.RunGame(game)
}
