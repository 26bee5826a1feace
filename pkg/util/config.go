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

package util

type WorkloadOptions struct {
	Name       string   `toml:"name"`
	Rows       int      `toml:"rows"`
	KeyTypes   []string `toml:"keyTypes"`
	Desc       []bool   `toml:"desc"`
	NullsFirst []bool   `toml:"nullsFirst"`
	NullFrac   float64  `toml:"nullFrac"`
	DupFrac    float64  `toml:"dupFrac"`
	Abbrev     bool     `toml:"abbrev"`
	CountDups  bool     `toml:"countDups"`
	Seed       int64    `toml:"seed"`
	Repeat     int      `toml:"repeat"`
}

type DebugOptions struct {
	Verify      bool `toml:"verify"`
	PrintResult bool `toml:"printResult"`
	Parallel    bool `toml:"parallel"`
	TimeoutMs   int  `toml:"timeoutMs"`
}

type Config struct {
	Workloads []WorkloadOptions `toml:"workloads"`
	Debug     DebugOptions      `toml:"debug"`
}
