package ledger

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ActorType is the kind of wallet owner.
type ActorType int

const (
	UnknownActor ActorType = iota
	ClientActor
	DistributorActor
	CourierActor
)

func (t ActorType) String() string {
	switch t {
	case ClientActor:
		return "client"
	case DistributorActor:
		return "distributor"
	case CourierActor:
		return "courier"
	case UnknownActor:
	}
	return "unknown"
}

func (t ActorType) Validate() error {
	if t < ClientActor || t > CourierActor {
		return errs.NewValueIsInvalidErrorWithCause("actor type", fmt.Errorf("%d is not a valid actor type", t))
	}
	return nil
}

func ParseActorType(s string) (ActorType, error) {
	for _, t := range []ActorType{ClientActor, DistributorActor, CourierActor} {
		if t.String() == s {
			return t, nil
		}
	}
	return UnknownActor, errs.NewValueIsInvalidErrorWithCause("actor type", fmt.Errorf("%q is not a valid actor type", s))
}

// Actor identifies one wallet.
type Actor struct {
	Type ActorType
	ID   kernel.UUID
}

func NewActor(t ActorType, id kernel.UUID) (Actor, error) {
	a := Actor{Type: t, ID: id}
	if err := a.Validate(); err != nil {
		return Actor{}, err
	}
	return a, nil
}

func (a Actor) Validate() error {
	return errors.Join(a.Type.Validate(), a.ID.Validate())
}

func (a Actor) String() string {
	return a.Type.String() + ":" + a.ID.String()
}
