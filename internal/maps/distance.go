package maps

import (
	"fmt"
	"strconv"
	"strings"
)

// parseDistanceText converts the service's localized distance text into whole
// kilometers. The unit suffix and thousands separators are dropped character
// by character, so "12 km" becomes 12 and "1,234 km" becomes 1234. Kilometer
// units and integer values are assumed.
func parseDistanceText(text string) (int, error) {
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case 'k', 'm', ',':
			return -1
		}
		return r
	}, text)

	km, err := strconv.Atoi(strings.TrimSpace(stripped))
	if err != nil {
		return 0, fmt.Errorf("parse distance text %q: %w", text, err)
	}
	return km, nil
}
