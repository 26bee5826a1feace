// Copyright 2024-2025 vexdb
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	dec "github.com/govalues/decimal"
	"github.com/huandu/go-clone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vexdb/sortexec/pkg/chunk"
	"github.com/vexdb/sortexec/pkg/common"
	"github.com/vexdb/sortexec/pkg/sortexec"
	"github.com/vexdb/sortexec/pkg/util"
)

func init() {
	cobra.OnInitialize(loadConfig)
	initSortBenchCmd()
}

var testerCfg = &util.Config{}
var cfgPath string

var info = "tester"
var RootCmd = &cobra.Command{
	Use:          "tester",
	Short:        info,
	Long:         info,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("use tester --help or -h")
	},
}

func loadConfig() {
	viper.SetConfigName("tester")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("etc")
	if err := viper.ReadInConfig(); err == nil {
		initDebugOptions()
	}
}

func initDebugOptions() {
	testerCfg.Debug.Verify = viper.GetBool("debug.verify")
	testerCfg.Debug.PrintResult = viper.GetBool("debug.printResult")
	testerCfg.Debug.Parallel = viper.GetBool("debug.parallel")
	testerCfg.Debug.TimeoutMs = viper.GetInt("debug.timeoutMs")
}

var sortBenchCmd = &cobra.Command{
	Use:          "sortbench",
	Short:        "run sort workloads from the config file",
	SilenceUsage: true,
	RunE:         runSortBench,
}

func initSortBenchCmd() {
	sortBenchCmd.Flags().StringVar(&cfgPath, "config", "etc/tester.toml", "workload config file")
	RootCmd.AddCommand(sortBenchCmd)
}

func runSortBench(cmd *cobra.Command, args []string) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = util.ConvertPanicError(v)
		}
	}()

	if !util.FileIsValid(cfgPath) {
		return fmt.Errorf("config %s does not exist", cfgPath)
	}
	if _, err = toml.DecodeFile(cfgPath, testerCfg); err != nil {
		return err
	}

	ctx := context.Background()
	if testerCfg.Debug.TimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx,
			time.Duration(testerCfg.Debug.TimeoutMs)*time.Millisecond)
		defer cancel()
	}

	if testerCfg.Debug.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i := range testerCfg.Workloads {
			opts := &testerCfg.Workloads[i]
			g.Go(func() error {
				return runWorkload(gctx, opts)
			})
		}
		return g.Wait()
	}

	for i := range testerCfg.Workloads {
		if err = runWorkload(ctx, &testerCfg.Workloads[i]); err != nil {
			return err
		}
	}
	return nil
}

// dupCounter counts tied runs and tied rows, and remembers whether any run
// carried a null.
type dupCounter struct {
	_runs     int
	_rows     int
	_seenNull bool
}

func (dc *dupCounter) HandleDup(items []sortexec.SortItem, seenNull bool) error {
	dc._runs++
	dc._rows += len(items)
	dc._seenNull = dc._seenNull || seenNull
	return nil
}

func runWorkload(ctx context.Context, opts *util.WorkloadOptions) error {
	if len(opts.KeyTypes) < 2 {
		return fmt.Errorf("workload %s needs at least two keys", opts.Name)
	}
	repeat := opts.Repeat
	if repeat <= 0 {
		repeat = 1
	}

	r := rand.New(rand.NewSource(opts.Seed))
	cols := make([]*chunk.Column, 0, len(opts.KeyTypes))
	orderTypes := make([]sortexec.OrderType, 0, len(opts.KeyTypes))
	nullTypes := make([]sortexec.OrderByNullType, 0, len(opts.KeyTypes))
	for i, typ := range opts.KeyTypes {
		col, err := genColumn(r, typ, opts.Rows, opts.NullFrac, opts.DupFrac)
		if err != nil {
			return err
		}
		cols = append(cols, col)
		ot := sortexec.OT_ASC
		if i < len(opts.Desc) && opts.Desc[i] {
			ot = sortexec.OT_DESC
		}
		nt := sortexec.OBNT_NULLS_LAST
		if i < len(opts.NullsFirst) && opts.NullsFirst[i] {
			nt = sortexec.OBNT_NULLS_FIRST
		}
		orderTypes = append(orderTypes, ot)
		nullTypes = append(nullTypes, nt)
	}

	abbrev := opts.Abbrev && cols[0].PhyTyp() == common.VARCHAR
	layout := sortexec.NewColumnSortLayout(cols, orderTypes, nullTypes, abbrev)
	acc := sortexec.NewColumnAccessor(cols)
	var dh *dupCounter
	if opts.CountDups {
		dh = &dupCounter{}
	}
	var srt *sortexec.Sorter
	if dh != nil {
		srt = sortexec.NewSorter(layout, acc, dh)
	} else {
		srt = sortexec.NewSorter(layout, acc, nil)
	}

	items, err := sortexec.BuildSortItems(layout, cols)
	if err != nil {
		return err
	}

	var best time.Duration
	for rep := 0; rep < repeat; rep++ {
		input := clone.Clone(items).([]sortexec.SortItem)
		start := time.Now()
		if err = srt.Sort(ctx, input); err != nil {
			return err
		}
		elapsed := time.Since(start)
		if best == 0 || elapsed < best {
			best = elapsed
		}
		if testerCfg.Debug.Verify {
			if err = srt.VerifyOrdered(ctx, input); err != nil {
				return fmt.Errorf("workload %s: %w", opts.Name, err)
			}
		}
		if testerCfg.Debug.PrintResult && rep == repeat-1 {
			for _, item := range input {
				fmt.Println(item.RowID)
			}
		}
	}

	fields := []zap.Field{
		zap.String("name", opts.Name),
		zap.Int("rows", opts.Rows),
		zap.Int("keys", len(opts.KeyTypes)),
		zap.Duration("best", best),
	}
	if dh != nil {
		fields = append(fields,
			zap.Int("dupRuns", dh._runs),
			zap.Int("dupRows", dh._rows),
			zap.Bool("dupSeenNull", dh._seenNull))
	}
	util.Info("workload done", fields...)
	return nil
}

func genColumn(r *rand.Rand, typ string, rows int, nullFrac, dupFrac float64) (*chunk.Column, error) {
	appendDup := func(col *chunk.Column) bool {
		return col.Card() > 0 && r.Float64() < dupFrac
	}
	switch typ {
	case "bool":
		col := chunk.NewColumn(common.BOOL, rows)
		for i := 0; i < rows; i++ {
			if r.Float64() < nullFrac {
				col.AppendNull()
			} else {
				col.AppendBool(r.Intn(2) == 1)
			}
		}
		return col, nil
	case "int32":
		col := chunk.NewColumn(common.INT32, rows)
		for i := 0; i < rows; i++ {
			if r.Float64() < nullFrac {
				col.AppendNull()
			} else if appendDup(col) {
				col.AppendInt32(col.Int32(r.Intn(col.Card())))
			} else {
				col.AppendInt32(r.Int31() - r.Int31())
			}
		}
		return col, nil
	case "int64":
		col := chunk.NewColumn(common.INT64, rows)
		for i := 0; i < rows; i++ {
			if r.Float64() < nullFrac {
				col.AppendNull()
			} else if appendDup(col) {
				col.AppendInt64(col.Int64(r.Intn(col.Card())))
			} else {
				col.AppendInt64(r.Int63() - r.Int63())
			}
		}
		return col, nil
	case "uint64":
		col := chunk.NewColumn(common.UINT64, rows)
		for i := 0; i < rows; i++ {
			if r.Float64() < nullFrac {
				col.AppendNull()
			} else if appendDup(col) {
				col.AppendUint64(col.Uint64(r.Intn(col.Card())))
			} else {
				col.AppendUint64(r.Uint64())
			}
		}
		return col, nil
	case "double":
		col := chunk.NewColumn(common.DOUBLE, rows)
		for i := 0; i < rows; i++ {
			if r.Float64() < nullFrac {
				col.AppendNull()
			} else if appendDup(col) {
				col.AppendFloat64(col.Float64(r.Intn(col.Card())))
			} else {
				col.AppendFloat64(r.NormFloat64() * 1000)
			}
		}
		return col, nil
	case "varchar":
		col := chunk.NewColumn(common.VARCHAR, rows)
		for i := 0; i < rows; i++ {
			if r.Float64() < nullFrac {
				col.AppendNull()
			} else if appendDup(col) {
				col.AppendString(col.String(r.Intn(col.Card())))
			} else {
				col.AppendString(randString(r, 4+r.Intn(20)))
			}
		}
		return col, nil
	case "decimal":
		col := chunk.NewColumn(common.DECIMAL, rows)
		for i := 0; i < rows; i++ {
			if r.Float64() < nullFrac {
				col.AppendNull()
			} else if appendDup(col) {
				col.AppendDecimal(col.Decimal(r.Intn(col.Card())))
			} else {
				col.AppendDecimal(dec.MustNew(r.Int63n(1_000_000_000), r.Intn(4)))
			}
		}
		return col, nil
	default:
		return nil, fmt.Errorf("usp key type %s", typ)
	}
}

const letters = "abcdefghijklmnopqrstuvwxyz"

func randString(r *rand.Rand, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = letters[r.Intn(len(letters))]
	}
	return string(buf)
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		util.Error("tester failed", zap.Error(err))
		os.Exit(1)
	}
}
