package services

import (
	"fmt"
	"math"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

// GenerateInstructions derives coarse guidance from a route geometry.
//
// The result has two or three entries: a heading for the first quarter of the
// route with the total distance, a "continue" heading at the midpoint when the
// midpoint lies strictly inside the line, and the arrival instruction.
func GenerateInstructions(geometry domain.RouteGeometry, totalDistanceMeters float64) ([]domain.Instruction, error) {
	n := len(geometry)
	if n < 2 {
		return nil, domain.ErrInvalidGeometry
	}

	// floor(n/4) is 0 for short lines, which would measure a point against itself.
	target := n / 4
	if target == 0 {
		target = 1
	}

	instructions := make([]domain.Instruction, 0, 3)

	heading := domain.CompassDirection(domain.Bearing(geometry[0], geometry[target]))
	km := int64(math.Round(totalDistanceMeters / 1000))
	instructions = append(instructions, domain.Instruction{
		Text: fmt.Sprintf("Head %s for %d kilometers", heading, km),
		Kind: domain.InstructionHead,
	})

	if mid := n / 2; mid > 0 && mid < n-1 {
		dir := domain.CompassDirection(domain.Bearing(geometry[mid], geometry[mid+1]))
		instructions = append(instructions, domain.Instruction{
			Text: "Continue " + dir,
			Kind: domain.InstructionContinue,
		})
	}

	instructions = append(instructions, domain.Instruction{
		Text: domain.ArrivalText,
		Kind: domain.InstructionArrive,
	})

	return instructions, nil
}
