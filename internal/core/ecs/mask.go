package ecs

import (
	"math/bits"
	"strings"
)

// ComponentMask is a set of component identifiers, one bit each.
// Family signatures are precomputed masks; membership is a single AND.
type ComponentMask uint32

const (
	Position ComponentMask = 1 << iota
	Velocity
	Rotation
	Health
	Shooter
	Pickup
	Owner
	Avatar
	Projectile
	Sound
	Input
	CameraShake
	HitIndicator
	Outbox
)

var maskNames = [...]string{
	"Position", "Velocity", "Rotation", "Health", "Shooter", "Pickup", "Owner",
	"Avatar", "Projectile", "Sound", "Input", "CameraShake", "HitIndicator", "Outbox",
}

// Require builds a signature from individual components.
func Require(components ...ComponentMask) ComponentMask {
	var m ComponentMask
	for _, c := range components {
		m |= c
	}
	return m
}

// Count returns the number of components in the mask.
func (m ComponentMask) Count() int {
	return bits.OnesCount32(uint32(m))
}

func (m ComponentMask) String() string {
	if m == 0 {
		return "{}"
	}
	names := make([]string, 0, m.Count())
	for i, n := range maskNames {
		if m&(1<<i) != 0 {
			names = append(names, n)
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}
