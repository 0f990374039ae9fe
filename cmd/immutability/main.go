// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sawwas/redex/analysis/cfg"
	"github.com/sawwas/redex/analysis/config"
	"github.com/sawwas/redex/analysis/immutable"
	"github.com/sawwas/redex/analysis/ir/iryaml"
	"github.com/sawwas/redex/internal/formatutil"
	"github.com/sawwas/redex/internal/funcutil"
	"github.com/sawwas/redex/internal/graphutil"
)

// flags
var (
	configPath = ""
	showLoops  = false
)

func init() {
	flag.StringVar(&configPath, "config", "", "config file path (getter patterns, log level)")
	flag.BoolVar(&showLoops, "loops", false, "also report the elementary cycles of the control-flow graph")
}

const usage = `Run the immutable-subcomponent analysis on a yaml-encoded method body.

Usage:
  immutability -config config.yaml method.yaml

The method file describes the method's blocks and instructions; the config file
supplies the patterns classifying getter methods (see analysis/config).

Use -loops to also print the loops found in the control-flow graph.
`

func main() {
	if err := doMain(); err != nil {
		fmt.Fprintf(os.Stderr, "immutability: %s\n", err)
		os.Exit(1)
	}
}

func doMain() error {
	flag.Parse()

	if len(flag.Args()) != 1 || configPath == "" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	config.SetGlobalConfig(configPath)
	cfgFile, err := config.LoadGlobal()
	if err != nil {
		return err
	}
	logger := config.NewLogGroup(cfgFile)

	fmt.Fprintf(os.Stderr, "%s\n", formatutil.Faint("Reading method"))
	method, _, err := iryaml.DecodeFile(flag.Arg(0))
	if err != nil {
		return err
	}

	graph, err := cfg.New(method)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%s\n", formatutil.Faint("Analyzing"))
	analyzer := immutable.NewAnalyzer(graph, cfgFile.IsGetter(),
		immutable.WithLogger(logger),
		immutable.WithMaxIterations(cfgFile.MaxIterations))

	printSnapshots(analyzer)

	if showLoops {
		printLoops(graph)
	}
	return nil
}

func printSnapshots(analyzer *immutable.Analyzer) {
	snapshots := analyzer.BlockStateSnapshots()
	fmt.Printf("%s %s\n", formatutil.Bold("method"), analyzer.Graph().Method())
	for _, id := range funcutil.SortedKeys(snapshots) {
		snap := snapshots[id]
		fmt.Printf("  %s\n", formatutil.Cyan(fmt.Sprintf("B%d", id)))
		fmt.Printf("    entry %s\n", snap.EntryStateBindings)
		fmt.Printf("    exit  %s\n", snap.ExitStateBindings)
	}
}

func printLoops(graph *cfg.Graph) {
	fg := graphutil.NewFlowIterator(graph)
	cycles := graphutil.FindAllElementaryCycles(fg)
	if len(cycles) == 0 {
		fmt.Printf("%s\n", formatutil.Green("no loops"))
		return
	}
	for _, cycle := range cycles {
		names := funcutil.Map(cycle, func(id int64) string {
			return fg.IDMap[id].String()
		})
		fmt.Printf("%s %v\n", formatutil.Yellow("loop"), names)
	}
}
