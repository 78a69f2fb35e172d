// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"fmt"

	"code.hybscloud.com/atomix"
	"github.com/dustin/go-humanize"
)

// stats holds the ring's contention and throughput counters. Every
// field uses relaxed-enough atomic ordering for its own update; the
// counters are not meant to be read together as a consistent group,
// only as an approximate picture of how much the ring is contended.
type stats struct {
	writes               atomix.Uint64
	reads                atomix.Uint64
	emptyReads           atomix.Uint64
	queueFull            atomix.Uint64
	overwrites           atomix.Uint64
	topologyChange       atomix.Uint64
	writerContention     atomix.Uint64
	readerContention     atomix.Uint64
	stolenHeadContention atomix.Uint64
}

// Stats is a point-in-time snapshot of a Ring's counters, intended
// for debugging and monitoring dashboards, not for control flow.
type Stats struct {
	Writes               uint64
	Reads                uint64
	EmptyReads           uint64
	QueueFull            uint64
	Overwrites           uint64
	TopologyChange       uint64
	WriterContention     uint64
	ReaderContention     uint64
	StolenHeadContention uint64
	Capacity             int
	Mode                 Mode
}

// Stats returns a snapshot of the ring's counters.
func (r *Ring) Stats() Stats {
	return Stats{
		Writes:               r.stats.writes.LoadAcquire(),
		Reads:                r.stats.reads.LoadAcquire(),
		EmptyReads:           r.stats.emptyReads.LoadAcquire(),
		QueueFull:            r.stats.queueFull.LoadAcquire(),
		Overwrites:           r.stats.overwrites.LoadAcquire(),
		TopologyChange:       r.stats.topologyChange.LoadAcquire(),
		WriterContention:     r.stats.writerContention.LoadAcquire(),
		ReaderContention:     r.stats.readerContention.LoadAcquire(),
		StolenHeadContention: r.stats.stolenHeadContention.LoadAcquire(),
		Capacity:             r.Cap(),
		Mode:                 r.Mode(),
	}
}

// String renders the snapshot for logs, with large counters formatted
// for readability.
func (s Stats) String() string {
	return fmt.Sprintf(
		"ringq: cap=%d mode=%v writes=%s reads=%s overwrites=%s queue_full=%s "+
			"writer_contention=%s reader_contention=%s stolen_head_contention=%s",
		s.Capacity, s.Mode,
		humanize.Comma(int64(s.Writes)),
		humanize.Comma(int64(s.Reads)),
		humanize.Comma(int64(s.Overwrites)),
		humanize.Comma(int64(s.QueueFull)),
		humanize.Comma(int64(s.WriterContention)),
		humanize.Comma(int64(s.ReaderContention)),
		humanize.Comma(int64(s.StolenHeadContention)),
	)
}

func (m Mode) String() string {
	switch m {
	case Blocking:
		return "blocking"
	case Overwrite:
		return "overwrite"
	default:
		return "unknown"
	}
}
