package lba

import (
	"errors"
	"fmt"
	"iter"

	codec "github.com/oy3o/foxcodec"
)

// ErrMixedVariants is returned when a set is built from locators of more than one kind.
var ErrMixedVariants = errors.New("lba: locator set mixes variants")

// Kind selects the record shape shared by every locator in a set.
type Kind uint32

const (
	KindPowerCutArea Kind = iota
	KindNamed
	KindScaled
)

func (k Kind) String() string {
	switch k {
	case KindPowerCutArea:
		return "PowerCutArea"
	case KindNamed:
		return "Named"
	case KindScaled:
		return "Scaled"
	default:
		return fmt.Sprintf("Kind(%d)", uint32(k))
	}
}

func (k Kind) valid() bool { return k <= KindScaled }

// Locator is one of PowerCutAreaLocator, NamedLocator or ScaledLocator.
type Locator interface {
	Kind() Kind
	locator()
}

// PowerCutAreaLocator marks an area affected by a power cut.
type PowerCutAreaLocator struct {
	Position codec.Vector4
	Rotation codec.Quaternion
}

// NamedLocator is a locator identified by a name hash within a data set.
type NamedLocator struct {
	Position    codec.Vector4
	Rotation    codec.Quaternion
	LocatorName uint32
	DataSetName uint32
}

// ScaledLocator is a NamedLocator that also carries a scale.
type ScaledLocator struct {
	Position    codec.Vector4
	Rotation    codec.Quaternion
	Scale       codec.WideVector3
	LocatorName uint32
	DataSetName uint32
}

func (PowerCutAreaLocator) Kind() Kind { return KindPowerCutArea }
func (NamedLocator) Kind() Kind        { return KindNamed }
func (ScaledLocator) Kind() Kind       { return KindScaled }

func (PowerCutAreaLocator) locator() {}
func (NamedLocator) locator()        {}
func (ScaledLocator) locator()       {}

// LocatorSet is an ordered collection of locators that all share one Kind.
// Index order is locator identity. A set is never modified after construction.
type LocatorSet struct {
	kind     Kind
	locators []Locator
}

// NewLocatorSet builds a set of the given kind. It fails if kind is unknown or
// any locator is of a different kind.
func NewLocatorSet(kind Kind, locators ...Locator) (*LocatorSet, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("%w: locator kind %d", codec.ErrUnknownVariant, uint32(kind))
	}
	for i, l := range locators {
		if l == nil || l.Kind() != kind {
			return nil, fmt.Errorf("%w: locator %d is %v in a %v set", ErrMixedVariants, i, kindOf(l), kind)
		}
	}
	return &LocatorSet{kind: kind, locators: clone(locators)}, nil
}

func NewPowerCutAreaSet(locators []PowerCutAreaLocator) *LocatorSet {
	return newTypedSet(KindPowerCutArea, locators)
}

func NewNamedSet(locators []NamedLocator) *LocatorSet {
	return newTypedSet(KindNamed, locators)
}

func NewScaledSet(locators []ScaledLocator) *LocatorSet {
	return newTypedSet(KindScaled, locators)
}

func newTypedSet[T Locator](kind Kind, locators []T) *LocatorSet {
	set := &LocatorSet{kind: kind}
	if len(locators) > 0 {
		set.locators = make([]Locator, len(locators))
		for i, l := range locators {
			set.locators[i] = l
		}
	}
	return set
}

func (s *LocatorSet) Kind() Kind          { return s.kind }
func (s *LocatorSet) Len() int            { return len(s.locators) }
func (s *LocatorSet) At(i int) Locator    { return s.locators[i] }
func (s *LocatorSet) Locators() []Locator { return clone(s.locators) }

// Typed returns the set's locators as their concrete type, or false if the
// set holds a different kind.
func Typed[T Locator](s *LocatorSet) ([]T, bool) {
	var zero T
	if any(zero) == nil || zero.Kind() != s.kind {
		return nil, false
	}
	if len(s.locators) == 0 {
		return nil, true
	}
	out := make([]T, len(s.locators))
	for i, l := range s.locators {
		out[i] = l.(T)
	}
	return out, true
}

// Positions yields the position of every locator in index order.
func (s *LocatorSet) Positions() iter.Seq[codec.Vector4] {
	return func(yield func(codec.Vector4) bool) {
		for _, l := range s.locators {
			if !yield(positionOf(l)) {
				return
			}
		}
	}
}

func positionOf(l Locator) codec.Vector4 {
	switch l := l.(type) {
	case PowerCutAreaLocator:
		return l.Position
	case NamedLocator:
		return l.Position
	case ScaledLocator:
		return l.Position
	}
	return codec.Vector4{}
}

func clone(locators []Locator) []Locator {
	if len(locators) == 0 {
		return nil
	}
	return append([]Locator(nil), locators...)
}

func kindOf(l Locator) string {
	if l == nil {
		return "nil"
	}
	return l.Kind().String()
}
