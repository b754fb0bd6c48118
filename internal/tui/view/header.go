package view

import (
	"strconv"

	"github.com/javiermolinar/matchmaker/internal/event"
)

// BuyerColumnLabel heads the first grid column.
const BuyerColumnLabel = "Buyer"

// HeaderLabels builds the grid column labels: the buyer column followed by
// one short label per session, e.g. "M1 09:30".
func HeaderLabels(sessions []event.Session) []string {
	labels := make([]string, 0, len(sessions)+1)
	labels = append(labels, BuyerColumnLabel)
	for _, s := range sessions {
		labels = append(labels, s.Block.Prefix()+strconv.Itoa(s.Index)+" "+s.Start)
	}
	return labels
}

// BuyerLabel renders a buyer's row heading: name, country and block letter.
func BuyerLabel(b event.Buyer) string {
	return b.Name + " (" + b.Country + ", " + b.Block.Prefix() + ")"
}
