package api

import (
	"errors"
	"fmt"
)

// Validator - интерфейс, который реализуют payload-DTO.
type Validator interface {
	Validate() error
}

// Пределы размеров генерируемых карт.
const (
	MinMapSide = 4
	MaxMapSide = 512
)

func validAxes(name string, axes []int) error {
	if len(axes) != 2 && len(axes) != 3 {
		return fmt.Errorf("%s: expected 2 or 3 axis values, got %d", name, len(axes))
	}
	return nil
}

func (p GeneratePayload) Validate() error {
	if p.Name == "" {
		return errors.New("map name is required")
	}
	if p.Topology == "" {
		return errors.New("topology is required")
	}
	if p.Kind != "dungeon" && p.Kind != "terrain" {
		return fmt.Errorf("unknown map kind %q", p.Kind)
	}
	if p.Width < MinMapSide || p.Width > MaxMapSide ||
		p.Height < MinMapSide || p.Height > MaxMapSide {
		return fmt.Errorf("map size must be within %dx%d..%dx%d",
			MinMapSide, MinMapSide, MaxMapSide, MaxMapSide)
	}
	return nil
}

func (p PathPayload) Validate() error {
	if p.Map == "" {
		return errors.New("map name is required")
	}
	if err := validAxes("from", p.From); err != nil {
		return err
	}
	return validAxes("to", p.To)
}

func (p FOVPayload) Validate() error {
	if p.Map == "" {
		return errors.New("map name is required")
	}
	if err := validAxes("viewer", p.Viewer); err != nil {
		return err
	}
	if p.Range < 0 {
		return errors.New("range cannot be negative")
	}
	return nil
}

func (p LOSPayload) Validate() error {
	if p.Map == "" {
		return errors.New("map name is required")
	}
	if err := validAxes("from", p.From); err != nil {
		return err
	}
	return validAxes("to", p.To)
}

func (p LightingPayload) Validate() error {
	if p.Map == "" {
		return errors.New("map name is required")
	}
	if len(p.Sources) == 0 {
		return errors.New("at least one light source is required")
	}
	for i, src := range p.Sources {
		if err := validAxes(fmt.Sprintf("sources[%d].position", i), src.Position); err != nil {
			return err
		}
		if src.Radius < 0 {
			return fmt.Errorf("sources[%d]: radius cannot be negative", i)
		}
		if src.Intensity < 0 {
			return fmt.Errorf("sources[%d]: intensity cannot be negative", i)
		}
	}
	return nil
}

func (p MapPayload) Validate() error {
	if p.Map == "" {
		return errors.New("map name is required")
	}
	return nil
}
