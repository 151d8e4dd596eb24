//go:build linux

/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	perf "github.com/hodgesds/perf-utils"
)

// countCacheMisses runs f under the hardware cache miss counter. When the
// counter can not be opened, f is run uncounted.
func countCacheMisses(f func() error) (misses uint64, counted bool, err error) {
	var pv *perf.ProfileValue
	if pv, err = perf.CacheMiss(f); err == nil {
		return pv.Value, true, nil
	}
	return 0, false, f()
}
