// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"fmt"
	"time"
)

// Granularity quantizes the millisecond offset between a ticket's
// issue time and its spec's origin into a spec-local timestamp.
type Granularity int

const (
	Millisecond Granularity = iota
	Second
	Minute
	Hour
)

func (g Granularity) scaleMs() int64 {
	switch g {
	case Millisecond:
		return 1
	case Second:
		return 1000
	case Minute:
		return 60_000
	case Hour:
		return 3_600_000
	default:
		panic(fmt.Sprintf("ticket: unknown granularity %d", int(g)))
	}
}

func (g Granularity) String() string {
	switch g {
	case Millisecond:
		return "millisecond"
	case Second:
		return "second"
	case Minute:
		return "minute"
	case Hour:
		return "hour"
	default:
		return fmt.Sprintf("granularity(%d)", int(g))
	}
}

// Spec is one immutable ticket format version: the time zone and
// granularity used to derive a spec-local timestamp, the calendar
// year its timestamps are measured from, and the number of bits of
// its integrity hash tag.
type Spec struct {
	timeZone       *time.Location
	granularity    Granularity
	originYear     int
	hashLengthBits int

	originMs int64
}

// NewSpec returns a Spec. hashLengthBits must be in [0, 224].
func NewSpec(timeZone *time.Location, granularity Granularity, originYear, hashLengthBits int) (*Spec, error) {
	if timeZone == nil {
		return nil, fmt.Errorf("%w: nil time zone", ErrInvalidArgument)
	}
	if hashLengthBits < 0 || hashLengthBits > 224 {
		return nil, fmt.Errorf("%w: hash_length_bits %d out of range [0, 224]", ErrInvalidArgument, hashLengthBits)
	}
	origin := time.Date(originYear, time.January, 1, 0, 0, 0, 0, timeZone)
	return &Spec{
		timeZone:       timeZone,
		granularity:    granularity,
		originYear:     originYear,
		hashLengthBits: hashLengthBits,
		originMs:       origin.UnixMilli(),
	}, nil
}

// DefaultSpec returns a UTC, second-granularity, no-hash spec with
// origin year 2015, matching the upstream's DEFAULT constant. Nothing
// in this package applies it automatically: a Config's specs are
// always the caller's.
func DefaultSpec() *Spec {
	spec, err := NewSpec(time.UTC, Second, 2015, 0)
	if err != nil {
		panic(err) // unreachable: constant arguments are always valid.
	}
	return spec
}

// TimeZone returns the spec's time zone.
func (s *Spec) TimeZone() *time.Location { return s.timeZone }

// Granularity returns the spec's timestamp granularity.
func (s *Spec) Granularity() Granularity { return s.granularity }

// OriginYear returns the calendar year timestamps are measured from.
func (s *Spec) OriginYear() int { return s.originYear }

// HashLengthBits returns the number of bits of integrity hash this
// spec appends to a ticket, or 0 if it appends none.
func (s *Spec) HashLengthBits() int { return s.hashLengthBits }

// OriginMillis returns the absolute UTC epoch millisecond of midnight
// of OriginYear in TimeZone.
func (s *Spec) OriginMillis() int64 { return s.originMs }

// ToTimestamp converts an absolute epoch millisecond into this spec's
// local, quantized timestamp.
func (s *Spec) ToTimestamp(nowMs int64) int64 {
	return (nowMs - s.originMs) / s.granularity.scaleMs()
}

// ToAbsoluteMillis converts a spec-local timestamp back into an
// absolute epoch millisecond.
func (s *Spec) ToAbsoluteMillis(ts int64) int64 {
	return s.originMs + ts*s.granularity.scaleMs()
}
