// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/Meharab/Proof-of-Contribution/api"
	"github.com/Meharab/Proof-of-Contribution/attest"
	"github.com/Meharab/Proof-of-Contribution/cmd/pocd/httpserver"
	"github.com/Meharab/Proof-of-Contribution/engine"
	"github.com/Meharab/Proof-of-Contribution/log"
	"github.com/Meharab/Proof-of-Contribution/metrics"
	"github.com/Meharab/Proof-of-Contribution/thor"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "pocd")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("pocd %s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "pocd"
	app.Usage = "Proof of Contribution reward pool node"
	app.Flags = []cli.Flag{
		dataDirFlag,
		genesisFlag,
		cacheFlag,
		apiAddrFlag,
		apiCorsFlag,
		apiLogsLimitFlag,
		enableAPILogsFlag,
		maxAttestationAgeFlag,
		verbosityFlag,
		jsonLogsFlag,
		enableMetricsFlag,
		metricsAddrFlag,
		disableNTPFlag,
	}
	app.Action = defaultAction
	app.Commands = []cli.Command{
		{
			Name:  "attest",
			Usage: "sign a contribution attestation and print it as JSON",
			Flags: []cli.Flag{
				genesisFlag,
				keyFileFlag,
				poolFlag,
				contributionFlag,
				contributionHashFlag,
				pointerFlag,
				contributorFlag,
				rejectFlag,
				timestampFlag,
			},
			Action: attestAction,
		},
		{
			Name:      "hash",
			Usage:     "print the contribution hash of a content pointer",
			ArgsUsage: "<pointer>",
			Action:    hashAction,
		},
		{
			Name:   "keygen",
			Usage:  "generate an attestor key",
			Flags:  []cli.Flag{outFlag},
			Action: keygenAction,
		},
	}
	return app
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	initLogger(ctx)
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	instanceDir, err := makeInstanceDir(ctx, gene)
	if err != nil {
		return err
	}

	mainDB, err := openMainDB(ctx, instanceDir)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	logDB, err := openLogDB(instanceDir)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing event database..."); logDB.Close() }()

	eng, err := engine.New(mainDB, logDB, gene.NewTokenRegistry(), gene.Domain(), engine.Options{
		MaxAttestationAge: ctx.Uint64(maxAttestationAgeFlag.Name),
	})
	if err != nil {
		return err
	}
	defer eng.Close()

	applied, err := gene.Setup(eng)
	if err != nil {
		return err
	}
	if applied {
		logger.Info("genesis applied", "id", gene.ID(), "name", gene.Name())
	}

	var enableAPILogs atomic.Bool
	enableAPILogs.Store(ctx.Bool(enableAPILogsFlag.Name))
	handler, closeAPI := api.New(eng, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		LogsLimit:       ctx.Uint64(apiLogsLimitFlag.Name),
		EnableReqLogger: &enableAPILogs,
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
	})
	defer func() { logger.Info("stopping subscriptions..."); closeAPI() }()

	apiSrv, err := httpserver.Listen("api", ctx.String(apiAddrFlag.Name), handler)
	if err != nil {
		return err
	}
	servers := []*httpserver.Server{apiSrv}

	var metricsURL string
	if ctx.Bool(enableMetricsFlag.Name) {
		metricsSrv, err := httpserver.Listen("metrics", ctx.String(metricsAddrFlag.Name), httpserver.MetricsHandler())
		if err != nil {
			apiSrv.Close()
			return err
		}
		metricsURL = metricsSrv.URL() + "metrics"
		servers = append(servers, metricsSrv)
	}

	group, groupCtx := errgroup.WithContext(exitSignal)
	for _, srv := range servers {
		group.Go(func() error { return srv.Serve(groupCtx) })
	}
	if !ctx.Bool(disableNTPFlag.Name) {
		limit := maxClockOffset(ctx.Uint64(maxAttestationAgeFlag.Name))
		group.Go(func() error { return watchClock(groupCtx, limit) })
	}

	printStartupMessage(gene, instanceDir, apiSrv.URL(), metricsURL)
	if gene.Name() == "devnet" {
		printDevAccounts()
	}
	return group.Wait()
}

func attestAction(ctx *cli.Context) error {
	keyFile := ctx.String(keyFileFlag.Name)
	if keyFile == "" {
		return errors.Errorf("missing --%s", keyFileFlag.Name)
	}
	key, err := crypto.LoadECDSA(keyFile)
	if err != nil {
		return errors.Wrap(err, "load key")
	}
	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}

	a := attest.Attestation{
		PoolID:         ctx.Uint64(poolFlag.Name),
		ContributionID: ctx.Uint64(contributionFlag.Name),
		Valid:          !ctx.Bool(rejectFlag.Name),
		Timestamp:      ctx.Uint64(timestampFlag.Name),
	}
	if a.Timestamp == 0 {
		a.Timestamp = uint64(time.Now().Unix())
	}
	if a.Contributor, err = thor.ParseAddress(ctx.String(contributorFlag.Name)); err != nil {
		return errors.WithMessage(err, "contributor")
	}
	hash, pointer := ctx.String(contributionHashFlag.Name), ctx.String(pointerFlag.Name)
	switch {
	case hash != "" && pointer != "":
		return errors.Errorf("--%s and --%s are exclusive", contributionHashFlag.Name, pointerFlag.Name)
	case hash != "":
		if a.ContributionHash, err = thor.ParseBytes32(hash); err != nil {
			return errors.WithMessage(err, "hash")
		}
	case pointer != "":
		a.ContributionHash = attest.ContentHash(pointer)
	default:
		return errors.Errorf("one of --%s and --%s is required", contributionHashFlag.Name, pointerFlag.Name)
	}

	sig, err := attest.Sign(&a, gene.Domain(), key)
	if err != nil {
		return err
	}
	return printJSON(ctx.App.Writer, &attest.Signed{Attestation: a, Signature: sig})
}

func hashAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected exactly one pointer argument")
	}
	_, err := fmt.Fprintln(ctx.App.Writer, attest.ContentHash(ctx.Args().First()))
	return err
}

func keygenAction(ctx *cli.Context) error {
	key, err := crypto.GenerateKey()
	if err != nil {
		return err
	}
	if out := ctx.String(outFlag.Name); out != "" {
		if err := crypto.SaveECDSA(out, key); err != nil {
			return errors.Wrap(err, "save key")
		}
	} else {
		fmt.Fprintln(ctx.App.Writer, hex.EncodeToString(crypto.FromECDSA(key)))
	}
	_, err = fmt.Fprintln(ctx.App.Writer, "address:", attest.Address(key))
	return err
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
