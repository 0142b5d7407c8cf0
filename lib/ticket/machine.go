// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"fmt"

	"github.com/originmark/tickets/lib/bitcode"
	"github.com/originmark/tickets/lib/ticketformat"
)

// Machine is bound to one basis (a spec plus an origin) and issues
// tickets under it. A Machine holds no mutable state of its own: its
// sequence is injected from the factory's Provider and must serialize
// its own Next/IsUnsequenced calls.
type Machine[O, D any] struct {
	factory   *Factory[O, D]
	spec      *Spec
	specIndex int
	basis     Basis
	sequence  Sequence
	hasSecret bool
}

// Basis returns the identity this machine issues tickets under.
func (m *Machine[O, D]) Basis() Basis { return m.basis }

// IsDisposable reports whether this machine's basis has gone idle:
// the factory sweeps disposable machines from its cache on each
// MachineFor call.
func (m *Machine[O, D]) IsDisposable(nowTs int64) bool {
	return m.sequence.IsUnsequenced(nowTs)
}

// Issue assembles, encrypts, hashes, and formats a new ticket carrying
// data, per the bit layout: VERSION, spec_index, timestamp, sequence,
// open origin bits, open data, an optional encrypted secret block, an
// optional hash tag, and zero padding out to a multiple of 5 bits.
func (m *Machine[O, D]) Issue(data D) (*Ticket[O, D], error) {
	dataValues := m.factory.config.DataToValues(data)

	nowMs := m.factory.clock.Now().UnixMilli()
	ts := m.spec.ToTimestamp(nowMs)
	seq, err := m.sequence.Next(ts)
	if err != nil {
		return nil, err
	}

	w := bitcode.NewWriter()
	w.WritePositiveInt(0)
	w.WritePositiveInt(uint32(m.specIndex))
	w.WritePositiveLong(uint64(ts))
	w.WritePositiveLong(uint64(seq))

	openOrigin := bitcode.NewReader(m.basis.OpenOriginBits, m.basis.OpenOriginNBits)
	if err := w.WriteFrom(openOrigin, m.basis.OpenOriginNBits); err != nil {
		return nil, fmt.Errorf("ticket: writing open origin bits: %w", err)
	}
	m.factory.dataAdapter.Write(w, false, dataValues)

	if m.hasSecret {
		digest := m.factory.digests.digest(m.specIndex, w.Bytes())
		nonce, _ := deriveNonce(digest)

		secretWriter := bitcode.NewWriter()
		m.factory.originAdapter.Write(secretWriter, true, m.basis.RawValues)
		m.factory.dataAdapter.Write(secretWriter, true, dataValues)
		secretWriter.WritePositiveLong(nonce)

		sLength := secretWriter.Position()
		if sLength > 160 {
			return nil, fmt.Errorf("%w: secret payload is %d bits, exceeds 160", ErrInvalidArgument, sLength)
		}
		w.WritePositiveInt(uint32(sLength))

		cipher := bitcode.XORBits(secretWriter.Bytes(), digest, sLength)
		if err := w.WriteFrom(bitcode.NewReader(cipher, sLength), sLength); err != nil {
			return nil, fmt.Errorf("ticket: writing secret block: %w", err)
		}
	} else {
		w.WritePositiveInt(0)
	}

	if m.spec.HashLengthBits() > 0 {
		tag := m.factory.digests.digest(m.specIndex, w.Bytes())
		if err := w.WriteFrom(bitcode.NewReader(tag, m.spec.HashLengthBits()), m.spec.HashLengthBits()); err != nil {
			return nil, fmt.Errorf("ticket: writing hash tag: %w", err)
		}
	}

	pad := (5 - w.Position()%5) % 5
	w.WriteBits(0, pad)

	size := w.Position()
	str, err := ticketformat.Encode(m.factory.Format(), bitcode.NewReader(w.Bytes(), size), m.factory.config.CharLimit)
	if err != nil {
		return nil, err
	}

	origin := m.factory.config.ValuesToOrigin(m.basis.RawValues)

	return &Ticket[O, D]{
		SpecIndex:      m.specIndex,
		TimestampMs:    m.spec.ToAbsoluteMillis(ts),
		SequenceNumber: seq,
		Origin:         origin,
		Data:           data,
		bitImage:       w.Bytes(),
		bitLength:      size,
		stringImage:    str,
	}, nil
}
