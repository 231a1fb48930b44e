// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/Meharab/Proof-of-Contribution/genesis"
	"github.com/Meharab/Proof-of-Contribution/log"
	"github.com/Meharab/Proof-of-Contribution/logdb"
	"github.com/Meharab/Proof-of-Contribution/lvldb"
	"github.com/Meharab/Proof-of-Contribution/thor"
)

func initLogger(ctx *cli.Context) {
	var level slog.LevelVar
	level.Set(log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)))

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stderr, &level)
	} else {
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, &level, useColor)
	}
	log.SetDefault(handler)
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	file := ctx.String(genesisFlag.Name)
	if file == "" {
		return genesis.NewDevnet(), nil
	}
	cfg, err := genesis.LoadConfig(file)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(file)
	return genesis.New(name[:len(name)-len(filepath.Ext(name))], cfg)
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Application Support", "org.poc.pocd")
		}
		return filepath.Join(home, ".org.poc.pocd")
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", errors.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	instanceDir := filepath.Join(dataDir, fmt.Sprintf("instance-%x", gene.ID().Bytes()[24:]))
	if err := os.MkdirAll(instanceDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create instance dir [%v]", instanceDir)
	}
	return instanceDir, nil
}

func openMainDB(ctx *cli.Context, dir string) (*lvldb.LevelDB, error) {
	cacheMB := normalizeCacheSize(ctx.Int(cacheFlag.Name))
	fdCache := suggestFDCache()
	logger.Debug("open main database", "cache", cacheMB, "fdCache", fdCache)

	path := filepath.Join(dir, "main.db")
	db, err := lvldb.New(path, lvldb.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: fdCache,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open main database [%v]", path)
	}
	return db, nil
}

func normalizeCacheSize(sizeMB int) int {
	sizeMB = max(sizeMB, 16)

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem", "err", err)
		return sizeMB
	}
	// at most half of the physical ram
	if limitMB := int(mem.Total / 1024 / 1024 / 2); sizeMB > limitMB {
		logger.Warn("cache size(MB) limited", "limit", limitMB)
		return limitMB
	}
	return sizeMB
}

func suggestFDCache() int {
	limit, err := fdlimit.Current()
	if err != nil {
		logger.Warn("failed to get fd limit", "err", err)
		return 500
	}
	if limit <= 1024 {
		logger.Warn("low fd limit, increase it if possible", "limit", limit)
	}
	return min(limit/2, 5120)
}

func openLogDB(dir string) (*logdb.LogDB, error) {
	path := filepath.Join(dir, "events.db")
	db, err := logdb.New(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open event database [%v]", path)
	}
	return db, nil
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func printStartupMessage(gene *genesis.Genesis, instanceDir, apiURL, metricsURL string) {
	fmt.Printf(`Starting %v
    Genesis      [ %v %v ]
    Domain       [ chain %v contract %v ]
    Instance dir [ %v ]
    API portal   [ %v ]
    Metrics      [ %v ]
`,
		fullVersion(),
		gene.ID(), gene.Name(),
		gene.Domain().ChainID, gene.Domain().VerifyingContract,
		instanceDir,
		apiURL,
		func() string {
			if metricsURL == "" {
				return "disabled"
			}
			return metricsURL
		}(),
	)
}

func printDevAccounts() {
	tableHead := `
┌────────────────────────────────────────────┬────────────────────────────────────────────────────────────────────┐
│                   Address                  │                             Private Key                            │`
	tableContent := `
├────────────────────────────────────────────┼────────────────────────────────────────────────────────────────────┤
│ %v │ %v │`
	tableEnd := `
└────────────────────────────────────────────┴────────────────────────────────────────────────────────────────────┘`

	info := fmt.Sprintf("    Dev token    [ %v ]", genesis.DevToken) + tableHead
	for _, a := range genesis.DevAccounts() {
		info += fmt.Sprintf(tableContent,
			a.Address,
			thor.BytesToBytes32(crypto.FromECDSA(a.PrivateKey)),
		)
	}
	info += tableEnd + "\r\n"
	fmt.Print(info)
}
