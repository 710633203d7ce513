// Package distributor holds the merchant aggregate. Its copy of each order is
// stored separately as the distributor projection.
package distributor

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrNameIsRequired              = errs.NewValueIsRequiredError("name")
	ErrDistributorIsNotConstructed = errors.New("Distributor must be created via NewDistributor constructor")
)

// Distributor is a merchant with a fixed shop location, the origin of every
// courier ranking.
type Distributor struct {
	id       kernel.UUID
	name     string
	location kernel.GeoPoint
	guard    guard.ConstructorGuard
}

func NewDistributor(id kernel.UUID, name string, location kernel.GeoPoint) (*Distributor, error) {
	d := &Distributor{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setLocation(location),
	); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Distributor) Validate() error {
	if d == nil {
		return ErrDistributorIsNotConstructed
	}
	return d.guard.Validate(ErrDistributorIsNotConstructed)
}

func (d *Distributor) ID() kernel.UUID           { return d.id }
func (d *Distributor) Name() string              { return d.name }
func (d *Distributor) Location() kernel.GeoPoint { return d.location }

func (d *Distributor) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Distributor) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *Distributor) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	d.location = location
	return nil
}
