// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for state and event databases",
	}
	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "path to a yaml launch file (dev network if not set)",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Usage: "megabytes of ram allocated to the state database cache",
		Value: 256,
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8670",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiLogsLimitFlag = cli.Uint64Flag{
		Name:  "api-logs-limit",
		Value: 1000,
		Usage: "limit the number of events returned by /events API",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	maxAttestationAgeFlag = cli.Uint64Flag{
		Name:  "max-attestation-age",
		Usage: "reject attestations whose timestamp is further than this many seconds from now (0 disables)",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2113",
		Usage: "metrics service listening address",
	}
	disableNTPFlag = cli.BoolFlag{
		Name:  "disable-ntp",
		Usage: "skip the periodic clock offset check",
	}

	// attest command
	keyFileFlag = cli.StringFlag{
		Name:  "key-file",
		Usage: "path to the hex encoded attestor private key",
	}
	poolFlag = cli.Uint64Flag{
		Name:  "pool",
		Usage: "pool id",
	}
	contributionFlag = cli.Uint64Flag{
		Name:  "contribution",
		Usage: "contribution id",
	}
	contributionHashFlag = cli.StringFlag{
		Name:  "hash",
		Usage: "contribution hash",
	}
	pointerFlag = cli.StringFlag{
		Name:  "pointer",
		Usage: "content pointer the contribution hash is computed from",
	}
	contributorFlag = cli.StringFlag{
		Name:  "contributor",
		Usage: "contributor address",
	}
	rejectFlag = cli.BoolFlag{
		Name:  "reject",
		Usage: "attest the contribution as invalid",
	}
	timestampFlag = cli.Uint64Flag{
		Name:  "timestamp",
		Usage: "attestation timestamp in unix seconds (now if not set)",
	}

	// keygen command
	outFlag = cli.StringFlag{
		Name:  "out",
		Usage: "write the key to this file instead of stdout",
	}
)
