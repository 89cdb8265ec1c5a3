// Package report renders the end-of-run fleet summary.
package report

import (
	"fmt"
	"strings"

	"vendsim/internal/fleet"
)

// Summary formats the final machine quantities together with the warn and
// clear counts taken from the alert journal. One line per machine.
func Summary(machines []fleet.Machine, alertCounts map[string]map[string]int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("fleet summary (%d machines)\n", len(machines)))
	for _, m := range machines {
		warned := 0
		cleared := 0
		if c, ok := alertCounts[m.ID]; ok {
			warned = c["warned"]
			cleared = c["cleared"]
		}
		b.WriteString(fmt.Sprintf("machine %s qty=%d warned=%d cleared=%d\n", m.ID, m.Qty, warned, cleared))
	}
	return strings.TrimRight(b.String(), "\n")
}
