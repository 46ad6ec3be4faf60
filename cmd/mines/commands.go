package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/input"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

var (
	configPath string
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:           "mines",
	Short:         "Minesweeper in the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game, reading moves from stdin",
	Long: `Play a game of minesweeper. Moves are read one per line:

  o X Y   open a cell          f X Y   toggle a flag
  c X Y   chord a number       r       give up

Examples:
  mines play                           # 40x20 with 99 mines
  mines play -W 9 -H 9 -m 10           # beginner board
  mines play --seed 42 -c mines.yaml   # reproducible board from a config file`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		v := version
		if info, ok := debug.ReadBuildInfo(); ok && v == "dev" && info.Main.Version != "" {
			v = info.Main.Version
		}
		fmt.Fprintf(cmd.OutOrStdout(), "mines %s (%s %s/%s)\n", v, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")

	playCmd.Flags().IntP("width", "W", config.DefaultBoard.Width, "board width")
	playCmd.Flags().IntP("height", "H", config.DefaultBoard.Height, "board height")
	playCmd.Flags().IntP("mines", "m", config.DefaultBoard.MineCount, "number of mines")
	playCmd.Flags().Uint64("seed", 0, "random seed for a reproducible board")
	playCmd.Flags().Duration("sweep-delay", 30*time.Millisecond, "pause between mines uncovered after a loss")
	playCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and lets explicitly set flags win.
func loadConfig(cmd *cobra.Command) (*config.Client, error) {
	cfg, err := config.LoadClient(configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Board.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		cfg.Board.Height, _ = flags.GetInt("height")
	}
	if flags.Changed("mines") {
		cfg.Board.MineCount, _ = flags.GetInt("mines")
	}
	if flags.Changed("seed") {
		seed, _ := flags.GetUint64("seed")
		cfg.Seed = &seed
	}
	if flags.Changed("sweep-delay") {
		cfg.SweepDelay, _ = flags.GetDuration("sweep-delay")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func seededRand(seed *uint64) *rand.Rand {
	if seed == nil {
		return nil
	}
	return rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("unable to set up logging: %w", err)
	}

	board, err := mines.New(cfg.Board.Width, cfg.Board.Height, cfg.Board.MineCount, seededRand(cfg.Seed))
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"width":  cfg.Board.Width,
		"height": cfg.Board.Height,
		"mines":  cfg.Board.MineCount,
		"seeded": cfg.Seed != nil,
	}).Info("new game")

	out := cmd.OutOrStdout()
	g := &game{
		ctrl:    input.NewController(board, input.NewResolver(cfg.InputWindow, time.Now)),
		out:     out,
		render:  newRenderer(out, !noColor),
		log:     log,
		delay:   cfg.SweepDelay,
		animate: out == os.Stdout,
		now:     time.Now,
		sleep:   sleepCtx,
	}
	return g.run(cmd.Context(), cmd.InOrStdin())
}
