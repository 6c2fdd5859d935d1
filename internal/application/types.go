package application

import "labelboard/internal/domain"

// Re-export domain types for use by adapters
type (
	Ticket       = domain.Ticket
	ColorTable   = domain.ColorTable
	Distribution = domain.Distribution
	Bucket       = domain.Bucket
	PieLayout    = domain.PieLayout
	Slice        = domain.Slice
	LegendEntry  = domain.LegendEntry
)

const UnlabeledBucket = domain.UnlabeledBucket

// DisplayLabel returns the label as shown to operators
func DisplayLabel(label string) string {
	if label == "" {
		return UnlabeledBucket
	}
	return label
}
