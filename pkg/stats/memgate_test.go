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

import "testing"

func TestMemGateAcquireRelease(t *testing.T) {
	g := NewMemGate(2, 100)
	if err := g.Acquire(1, 50, "t1"); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := g.Acquire(1, 50, "t2"); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	g.Release(1, 50)
	g.Release(1, 50)
	if err := g.Acquire(2, 100, "t3"); err != nil {
		t.Fatalf("Acquire after full release: %v", err)
	}
}

func TestMemGateFailsFastOnOversizedRequest(t *testing.T) {
	g := NewMemGate(1, 10)
	if err := g.Acquire(2, 5, "too much cpu"); err == nil {
		t.Fatal("Acquire should fail fast when cpu request exceeds total budget")
	}
	if err := g.Acquire(1, 20, "too much mem"); err == nil {
		t.Fatal("Acquire should fail fast when mem request exceeds total budget")
	}
}

func TestMemGateTotalMem(t *testing.T) {
	g := NewMemGate(4, 1<<20)
	if g.TotalMem() != 1<<20 {
		t.Fatalf("TotalMem() = %d, want %d", g.TotalMem(), 1<<20)
	}
}
