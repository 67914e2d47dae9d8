// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package licenses

import (
	"github.com/google/licensecheck"
)

// MinDetectionCoverage is the share of the text, in percent, a single license must match.
const MinDetectionCoverage = 75.0

// DetectSPDXKey suggests the SPDX identifier of a license full text.
// It returns false when no single license covers enough of the text.
func DetectSPDXKey(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	coverage := licensecheck.Scan([]byte(text))
	if coverage.Percent < MinDetectionCoverage {
		return "", false
	}

	best := ""
	bestLen := 0
	for _, m := range coverage.Match {
		if m.IsURL {
			continue
		}
		if l := m.End - m.Start; l > bestLen {
			best = m.ID
			bestLen = l
		}
	}
	return best, best != ""
}
