// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/originmark/tickets/lib/bitcode"
	"github.com/originmark/tickets/lib/clock"
	"github.com/originmark/tickets/lib/secret"
	"github.com/originmark/tickets/lib/ticketfield"
	"github.com/originmark/tickets/lib/ticketformat"
)

// Factory owns a Config's specs and digests, a sequence provider, the
// live ticket string format, and a cache of machines keyed by basis.
// A Factory is safe for concurrent use.
type Factory[O, D any] struct {
	config  *Config[O, D]
	digests digestSet
	primary int

	sequences Provider
	clock     clock.Clock
	logger    *slog.Logger

	format atomic.Pointer[ticketformat.Format]

	mu       sync.Mutex
	machines map[string]*Machine[O, D]

	originAdapter *ticketfield.Adapter
	dataAdapter   *ticketfield.Adapter
}

// Option configures optional Factory behavior.
type Option[O, D any] func(*Factory[O, D])

// WithSequenceProvider overrides the default in-memory sequence
// provider, e.g. with a durable SQLite-backed one.
func WithSequenceProvider[O, D any](p Provider) Option[O, D] {
	return func(f *Factory[O, D]) { f.sequences = p }
}

// WithClock overrides the factory's time source, for testing.
func WithClock[O, D any](c clock.Clock) Option[O, D] {
	return func(f *Factory[O, D]) { f.clock = c }
}

// WithLogger overrides the factory's logger, which defaults to a
// discarding handler.
func WithLogger[O, D any](logger *slog.Logger) Option[O, D] {
	return func(f *Factory[O, D]) { f.logger = logger }
}

// NewFactory builds a Factory from cfg. secrets holds one keying
// secret per spec, oldest first; it may be shorter than cfg.Specs (or
// nil), in which case later specs share the last supplied secret's
// prekeyed digest, per the prekeying construction in digest.go.
func NewFactory[O, D any](cfg *Config[O, D], secrets []*secret.Buffer, opts ...Option[O, D]) (*Factory[O, D], error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidArgument)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f := &Factory[O, D]{
		config:        cfg,
		digests:       buildDigests(len(cfg.Specs), secrets),
		primary:       cfg.PrimaryIndex(),
		sequences:     NewMemoryProvider(),
		clock:         clock.Real(),
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		machines:      make(map[string]*Machine[O, D]),
		originAdapter: ticketfield.NewAdapter(cfg.OriginSchema),
		dataAdapter:   ticketfield.NewAdapter(cfg.DataSchema),
	}
	format := cfg.Format
	if format == (ticketformat.Format{}) {
		format = DefaultFormat
	}
	f.format.Store(&format)

	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// SetFormat atomically replaces the format used to encode
// subsequently issued tickets. Readers in progress see either the
// old or new value, never a torn mix.
func (f *Factory[O, D]) SetFormat(format ticketformat.Format) {
	old := f.format.Swap(&format)
	f.logger.Debug("ticket: format changed", "old", *old, "new", format)
}

// Format returns the format currently used to encode tickets.
func (f *Factory[O, D]) Format() ticketformat.Format {
	return *f.format.Load()
}

// MachineFor returns a Machine bound to the basis derived from
// origin, using the factory's primary (newest) spec. Internally, the
// factory sweeps disposable entries from its machines cache, then
// looks up or inserts an entry for this basis.
func (f *Factory[O, D]) MachineFor(origin O) (*Machine[O, D], error) {
	originValues := f.config.OriginToValues(origin)

	openWriter := bitcode.NewWriter()
	f.originAdapter.Write(openWriter, false, originValues)

	secretWriter := bitcode.NewWriter()
	f.originAdapter.Write(secretWriter, true, originValues)

	basis := Basis{
		SpecIndex:         f.primary,
		OpenOriginBits:    openWriter.Bytes(),
		OpenOriginNBits:   openWriter.Position(),
		SecretOriginBits:  secretWriter.Bytes(),
		SecretOriginNBits: secretWriter.Position(),
		RawValues:         originValues,
	}
	spec := f.config.Specs[f.primary]

	f.mu.Lock()
	defer f.mu.Unlock()

	key := basis.key()
	now := spec.ToTimestamp(f.clock.Now().UnixMilli())
	swept := 0
	for k, m := range f.machines {
		if k != key && m.IsDisposable(now) {
			delete(f.machines, k)
			swept++
		}
	}
	if swept > 0 {
		f.logger.Debug("ticket: disposability sweep", "swept", swept, "remaining", len(f.machines))
	}

	m, ok := f.machines[key]
	if !ok {
		hasSecret := len(f.config.OriginSchema.SecretFields()) > 0 || len(f.config.DataSchema.SecretFields()) > 0
		m = &Machine[O, D]{
			factory:   f,
			spec:      spec,
			specIndex: f.primary,
			basis:     basis,
			sequence:  f.sequences.GetSequence(basis),
			hasSecret: hasSecret,
		}
		f.machines[key] = m
	}

	// The upstream factory inserts a machine into its cache but
	// returns a freshly constructed one wrapping the stored basis
	// rather than the cached instance itself. That quirk has no
	// externally observable effect (both wrap the same basis and
	// sequence), so it is preserved rather than "fixed": callers
	// must not rely on machine identity across calls.
	return &Machine[O, D]{
		factory:   f,
		spec:      m.spec,
		specIndex: m.specIndex,
		basis:     m.basis,
		sequence:  m.sequence,
		hasSecret: m.hasSecret,
	}, nil
}

// Decode reverses Issue: it parses str under the factory's char
// limit, validates VERSION and spec_index, decodes open and secret
// fields, verifies the integrity hash (if the spec declares one), and
// checks that trailing padding is all-zero.
func (f *Factory[O, D]) Decode(str string) (*Ticket[O, D], error) {
	if str == "" {
		return nil, fmt.Errorf("%w: empty ticket string", ErrInvalidArgument)
	}

	r, err := ticketformat.Decode(str, f.config.CharLimit)
	if err != nil {
		return nil, err
	}
	size := r.Size()

	version, err := r.ReadPositiveInt()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if version != 0 {
		return nil, fmt.Errorf("%w: %d", ErrWrongVersion, version)
	}

	specIndexU, err := r.ReadPositiveInt()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	specIndex := int(specIndexU)
	if specIndex > f.primary {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSpec, specIndex)
	}
	spec := f.config.Specs[specIndex]

	tsRaw, err := r.ReadPositiveLong()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	seqRaw, err := r.ReadPositiveLong()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	ts := int64(tsRaw)

	originValues := f.config.OriginSchema.Defaults()
	dataValues := f.config.DataSchema.Defaults()
	if err := f.originAdapter.Read(r, false, originValues); err != nil {
		return nil, err
	}
	if err := f.dataAdapter.Read(r, false, dataValues); err != nil {
		return nil, err
	}

	prefixEnd := r.Position()
	sLength, err := r.ReadPositiveInt()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if sLength > 0 {
		if sLength > 160 {
			return nil, fmt.Errorf("%w: secret block length %d exceeds 160 bits", ErrMalformed, sLength)
		}

		sBitsWriter := bitcode.NewWriter()
		if err := sBitsWriter.WriteFrom(r, int(sLength)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		prefixBytes := prefixBytesOf(r, prefixEnd)
		digest := f.digests.digest(specIndex, prefixBytes)

		plain := bitcode.XORBits(sBitsWriter.Bytes(), digest, int(sLength))
		sr := bitcode.NewReader(plain, int(sLength))

		if err := f.originAdapter.Read(sr, true, originValues); err != nil {
			return nil, err
		}
		if err := f.dataAdapter.Read(sr, true, dataValues); err != nil {
			return nil, err
		}
		if _, err := sr.ReadPositiveLong(); err != nil { // nonce, discarded.
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if sr.Remaining() != 0 {
			return nil, fmt.Errorf("%w: %d bits left over in secret block", ErrMalformed, sr.Remaining())
		}
	}

	if spec.HashLengthBits() > 0 {
		consumedBytes := prefixBytesOf(r, r.Position())
		expected := f.digests.digest(specIndex, consumedBytes)

		gotWriter := bitcode.NewWriter()
		if err := gotWriter.WriteFrom(r, spec.HashLengthBits()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		expectedTag := bitcode.NewWriter()
		expectedReader := bitcode.NewReader(expected, spec.HashLengthBits())
		if err := expectedTag.WriteFrom(expectedReader, spec.HashLengthBits()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if !bitcodeBytesEqual(gotWriter.Bytes(), expectedTag.Bytes()) {
			return nil, ErrBadHash
		}
	}

	if size-r.Position() > 4 {
		return nil, fmt.Errorf("%w: %d trailing bits exceeds padding limit", ErrMalformed, size-r.Position())
	}
	for r.Position() < size {
		bit, err := r.ReadBit()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if bit != 0 {
			return nil, fmt.Errorf("%w: non-zero padding bit", ErrMalformed)
		}
	}

	origin := f.config.ValuesToOrigin(originValues)
	data := f.config.ValuesToData(dataValues)

	return &Ticket[O, D]{
		SpecIndex:      specIndex,
		TimestampMs:    spec.ToAbsoluteMillis(ts),
		SequenceNumber: int64(seqRaw),
		Origin:         origin,
		Data:           data,
		bitImage:       prefixBytesOf(r, size),
		bitLength:      size,
		stringImage:    str,
	}, nil
}

// prefixBytesOf repacks bits [0, n) of r's underlying sequence
// (regardless of r's current read position) into a tightly-packed,
// big-endian byte slice.
func prefixBytesOf(r *bitcode.Reader, n int) []byte {
	sub, err := r.Slice(0, n)
	if err != nil {
		sub = bitcode.NewReader(nil, 0)
	}
	w := bitcode.NewWriter()
	w.WriteFrom(sub, n)
	return w.Bytes()
}

func bitcodeBytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
