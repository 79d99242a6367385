package consensus

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"

	"GossipQuorum/internal/entropy"
)

// DefaultFloodMax bounds the batch size of flooding strategies.
const DefaultFloodMax = 50

var (
	// ErrUnknownStrategy is returned for strategy names or kinds outside the closed set.
	ErrUnknownStrategy = errors.New("unknown malicious strategy")

	// ErrInvalidStrategyMix is returned for unusable strategy weights.
	ErrInvalidStrategyMix = errors.New("invalid strategy mix")
)

// StrategyKind identifies a malicious behaviour.
type StrategyKind uint8

const (
	// StrategySilent never proposes and ignores everything: a dead peer.
	StrategySilent StrategyKind = iota

	// StrategyFlooder proposes a fresh batch of synthetic ids every round.
	StrategyFlooder

	// StrategySwitcher flips between silent and flooding each round.
	StrategySwitcher

	// StrategyEcho re-broadcasts everything it ever received, every round.
	StrategyEcho

	strategyCount
)

var strategyNames = [strategyCount]string{"silent", "flooder", "switcher", "echo"}

// String returns the strategy name.
func (k StrategyKind) String() string {
	if k < strategyCount {
		return strategyNames[k]
	}
	return "unknown(" + strconv.Itoa(int(k)) + ")"
}

// Strategies lists every strategy kind in declaration order.
func Strategies() []StrategyKind {
	out := make([]StrategyKind, strategyCount)
	for i := range out {
		out[i] = StrategyKind(i)
	}
	return out
}

// ParseStrategy maps a name to its kind.
func ParseStrategy(name string) (StrategyKind, error) {
	for i, n := range strategyNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return StrategyKind(i), nil
		}
	}
	return 0, fmt.Errorf("%q:\n%w", name, ErrUnknownStrategy)
}

// Strategy is the adversarial behaviour plugged into a Malicious node.
// Strategies are not bound by follow masks, thresholds or trust checks.
type Strategy interface {
	Propose() TxSet
	Ingest(candidates CandidateSet)
	Kind() StrategyKind
}

// NewStrategy builds a strategy of the given kind. src drives its random
// choices; floodMax bounds flood batches (values below 1 use DefaultFloodMax).
func NewStrategy(kind StrategyKind, src rand.Source, floodMax int) (Strategy, error) {
	if floodMax < 1 {
		floodMax = DefaultFloodMax
	}

	switch kind {
	case StrategySilent:
		return silent{}, nil
	case StrategyFlooder:
		return newFlooder(src, floodMax), nil
	case StrategySwitcher:
		return &switcher{
			coin:  entropy.NewCoin(0.5, src),
			flood: newFlooder(src, floodMax),
		}, nil
	case StrategyEcho:
		return &echo{seen: make(TxSet)}, nil
	default:
		return nil, fmt.Errorf("kind %d:\n%w", kind, ErrUnknownStrategy)
	}
}

type silent struct{}

func (silent) Propose() TxSet { return TxSet{} }
func (silent) Ingest(CandidateSet) {}
func (silent) Kind() StrategyKind { return StrategySilent }

// flooder mints ids in [SyntheticBase, 2*SyntheticBase), disjoint from any
// valid pool.
type flooder struct {
	rng *rand.Rand
	max int
}

func newFlooder(src rand.Source, max int) *flooder {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &flooder{rng: rand.New(src), max: max}
}

func (f *flooder) Propose() TxSet {
	n := 1 + f.rng.IntN(f.max)
	out := make(TxSet, n)

	for i := 0; i < n; i++ {
		out.Add(SyntheticBase + Transaction(f.rng.Int64N(int64(SyntheticBase))))
	}

	return out
}

func (f *flooder) Ingest(CandidateSet) {}
func (f *flooder) Kind() StrategyKind { return StrategyFlooder }

// switcher changes behaviour between rounds to avoid detection.
type switcher struct {
	coin  entropy.Coin
	flood *flooder
}

func (s *switcher) Propose() TxSet {
	if s.coin.Flip() {
		return TxSet{}
	}
	return s.flood.Propose()
}

func (s *switcher) Ingest(CandidateSet) {}
func (s *switcher) Kind() StrategyKind { return StrategySwitcher }

// echo replays every transaction it has ever heard of, whoever sent it.
type echo struct {
	seen TxSet
}

func (e *echo) Propose() TxSet {
	return e.seen.Clone()
}

func (e *echo) Ingest(candidates CandidateSet) {
	for c := range candidates {
		e.seen.Add(c.Tx)
	}
}

func (e *echo) Kind() StrategyKind { return StrategyEcho }

// Malicious is a node whose behaviour is one Strategy, fixed for its lifetime.
type Malicious struct {
	id       NodeID
	strategy Strategy
}

// NewMalicious wraps strategy as node id.
func NewMalicious(id NodeID, strategy Strategy) *Malicious {
	return &Malicious{id: id, strategy: strategy}
}

// Initialize is ignored: malicious nodes do not honour follow masks.
func (m *Malicious) Initialize(FollowMask) {}

// Seed is ignored: malicious nodes do not start from valid knowledge.
func (m *Malicious) Seed(TxSet) {}

// Propose delegates to the strategy.
func (m *Malicious) Propose() TxSet {
	return m.strategy.Propose()
}

// Ingest delegates to the strategy.
func (m *Malicious) Ingest(candidates CandidateSet) {
	m.strategy.Ingest(candidates)
}

// Kind returns KindMalicious.
func (m *Malicious) Kind() Kind {
	return KindMalicious
}

// Strategy returns the kind of the wrapped strategy.
func (m *Malicious) Strategy() StrategyKind {
	return m.strategy.Kind()
}

func (m *Malicious) sealed() {}

// StrategyMix holds the relative weight of each strategy when malicious
// nodes pick their behaviour at random.
type StrategyMix [strategyCount]float64

// DefaultStrategyMix weighs every strategy equally.
func DefaultStrategyMix() StrategyMix {
	var mix StrategyMix
	for i := range mix {
		mix[i] = 1
	}
	return mix
}

// OnlyStrategy returns a mix that always picks kind.
func OnlyStrategy(kind StrategyKind) StrategyMix {
	var mix StrategyMix
	if kind < strategyCount {
		mix[kind] = 1
	}
	return mix
}

// ParseStrategyMix parses "name=weight,name=weight". Unlisted strategies get
// weight zero; a bare name means weight one.
func ParseStrategyMix(list string) (StrategyMix, error) {
	var mix StrategyMix

	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, weight, hasWeight := strings.Cut(part, "=")

		kind, err := ParseStrategy(name)
		if err != nil {
			return mix, err
		}

		w := 1.0
		if hasWeight {
			w, err = strconv.ParseFloat(strings.TrimSpace(weight), 64)
			if err != nil {
				return mix, fmt.Errorf("weight for %s: %v:\n%w", kind, err, ErrInvalidStrategyMix)
			}
		}

		mix[kind] = w
	}

	if err := mix.Validate(); err != nil {
		return mix, err
	}

	return mix, nil
}

// Validate checks that the weights form a distribution.
func (m StrategyMix) Validate() error {
	if _, err := entropy.NewChooser(m[:], nil); err != nil {
		return fmt.Errorf("%v:\n%w", err, ErrInvalidStrategyMix)
	}
	return nil
}

// String renders the non-zero weights as name=weight pairs.
func (m StrategyMix) String() string {
	var parts []string
	for i, w := range m {
		if w != 0 {
			parts = append(parts, fmt.Sprintf("%s=%g", StrategyKind(i), w))
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

// StrategyPicker draws strategy kinds according to a mix.
type StrategyPicker struct {
	chooser *entropy.Chooser
}

// NewStrategyPicker builds a picker over mix using src.
func NewStrategyPicker(mix StrategyMix, src rand.Source) (*StrategyPicker, error) {
	chooser, err := entropy.NewChooser(mix[:], src)
	if err != nil {
		return nil, fmt.Errorf("%v:\n%w", err, ErrInvalidStrategyMix)
	}
	return &StrategyPicker{chooser: chooser}, nil
}

// Pick returns the next strategy kind.
func (p *StrategyPicker) Pick() StrategyKind {
	return StrategyKind(p.chooser.Choose())
}
