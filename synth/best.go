// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synth

// Best holds at most one record per design point: the synthesis with
// the best achievable delay.
type Best struct {
	recs  []Record
	index map[Key]int
}

// SelectBest returns, for every technology, module and width in cfg,
// the record with the smallest delay among those that met their own
// target frequency. Ties keep the earliest record. Design points
// where no run met timing are absent.
func SelectBest(recs []Record, cfg *Config) *Best {
	// Bucket the candidates once so each design point is a
	// single pass over its own runs, preserving input order.
	cands := make(map[Key][]int)
	for i, r := range recs {
		if r.MeetsTiming() {
			cands[r.Key()] = append(cands[r.Key()], i)
		}
	}

	b := &Best{index: make(map[Key]int)}
	for _, tech := range cfg.Techs {
		for _, mod := range cfg.Modules {
			for _, w := range cfg.Widths {
				k := Key{mod, tech.Name, w}
				best := -1
				for _, i := range cands[k] {
					if best < 0 || recs[i].Delay < recs[best].Delay {
						best = i
					}
				}
				if best >= 0 {
					b.add(recs[best])
				}
			}
		}
	}
	return b
}

func (b *Best) add(r Record) {
	if _, ok := b.index[r.Key()]; ok {
		return
	}
	b.index[r.Key()] = len(b.recs)
	b.recs = append(b.recs, r)
}

// Lookup returns the best record for a design point.
func (b *Best) Lookup(tech, module string, width int) (Record, bool) {
	i, ok := b.index[Key{module, tech, width}]
	if !ok {
		return Record{}, false
	}
	return b.recs[i], true
}

// Records returns the selected records in technology, module, width
// order. The caller must not modify the returned slice.
func (b *Best) Records() []Record {
	return b.recs
}

// Len returns the number of design points with a best record.
func (b *Best) Len() int {
	return len(b.recs)
}
