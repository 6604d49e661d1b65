package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeusync/scenekit/internal/core/observability/log"
	"github.com/zeusync/scenekit/internal/core/scene"
	"github.com/zeusync/scenekit/internal/inspect"
)

func main() {
	configPath := flag.String("config", "", "path to inspector YAML config")
	flag.Parse()

	cfg := inspect.DefaultConfig()
	if *configPath != "" {
		f, err := os.Open(*configPath)
		if err != nil {
			fmt.Println("Error opening config:", err)
			os.Exit(1)
		}
		cfg, err = inspect.LoadConfig(f)
		_ = f.Close()
		if err != nil {
			fmt.Println("Error loading config:", err)
			os.Exit(1)
		}
	}

	logger := log.New(log.ParseLevel(cfg.LogLevel))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree := buildDemoScene(logger)
	srv := inspect.NewServer(cfg, tree, logger)

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	if err := srv.Start(ctx); err != nil {
		fmt.Println("Error starting inspector:", err)
		os.Exit(1)
	}

	<-stopCh
	cancel()
	if err := srv.Stop(); err != nil {
		fmt.Println("Error stopping inspector:", err)
	}
}

// buildDemoScene assembles a small tree so the inspector has something to
// show when scened runs standalone.
func buildDemoScene(logger log.Log) *scene.Tree {
	tree := scene.NewTree(scene.NewNode(scene.NodeType, "Root"), scene.WithLogger(logger))

	level := scene.CreateNative(scene.NodeType, scene.WithName("Level"), scene.WithParent(tree.Root()))
	player := scene.CreateNative(scene.NodeType, scene.WithName("Player"), scene.WithParent(level), scene.WithOwner(level))
	tree.AddToGroup(player, "players")

	for i := 1; i <= 3; i++ {
		enemy := scene.CreateNative(scene.NodeType,
			scene.WithName(fmt.Sprintf("Enemy%d", i)),
			scene.WithParent(level),
			scene.WithOwner(level))
		tree.AddToGroup(enemy, "enemies")
	}
	return tree
}
