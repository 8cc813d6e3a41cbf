/*
tokenflow - A static analysis token-stream and value-flow engine
Copyright (C) 2023  Naive Systems Ltd.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package stats

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang/glog"
)

// MemGate bounds the number of translation units analyzed concurrently by
// a shared cpu/memory budget, ported unchanged in algorithm from
// cpumem/cpumem.go: one *token.TokenList per goroutine, gated by
// Acquire/Release, matching spec §5's "parallelism is across translation
// units" model.
type MemGate struct {
	lock sync.Mutex
	cond *sync.Cond

	remainCPU, remainMem int
	totalCPU, totalMem   int
}

// NewMemGate returns a gate with the given total cpu/memory budget.
func NewMemGate(cpu, mem int) *MemGate {
	g := &MemGate{remainCPU: cpu, remainMem: mem, totalCPU: cpu, totalMem: mem}
	g.cond = sync.NewCond(&g.lock)
	return g
}

// Acquire blocks until cpu/mem are available, then reserves them. It fails
// fast if the request exceeds the gate's total budget.
func (g *MemGate) Acquire(cpu, mem int, taskName string) error {
	if cpu > g.totalCPU || mem > g.totalMem {
		return fmt.Errorf("%s requested %d cpu / %d KB memory, but only %d cpu / %d KB total available",
			taskName, cpu, mem, g.totalCPU, g.totalMem)
	}
	start := time.Now()
	g.lock.Lock()
	for g.remainCPU < cpu || g.remainMem < mem {
		g.cond.Wait()
	}
	g.remainCPU -= cpu
	g.remainMem -= mem
	g.lock.Unlock()
	glog.V(1).Infof("%s waited %s to acquire resources", taskName, time.Since(start))
	g.cond.Signal()
	return nil
}

// Release returns cpu/mem to the pool.
func (g *MemGate) Release(cpu, mem int) {
	g.lock.Lock()
	g.remainCPU += cpu
	g.remainMem += mem
	g.lock.Unlock()
	g.cond.Signal()
}

// TotalMem returns the gate's total memory budget.
func (g *MemGate) TotalMem() int { return g.totalMem }
