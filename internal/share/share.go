// Package share builds the share blurb for the active mission and copies
// it to the system clipboard. Clipboard failures degrade to a notice at
// the call site; sharing is never load-bearing.
package share

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Text renders the shareable blurb for a mission title.
func Text(missionTitle string) string {
	return fmt.Sprintf("Puri's Mission: %q 함께 참여하고 상금도 받아가세요!", missionTitle)
}

// Copy places the blurb for the mission title on the system clipboard.
func Copy(missionTitle string) error {
	if err := clipboard.WriteAll(Text(missionTitle)); err != nil {
		return fmt.Errorf("share: copy to clipboard: %w", err)
	}
	return nil
}
