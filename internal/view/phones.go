package view

import (
	"encoding/json"
	"fmt"

	"github.com/zvonbot/zvonocli/internal/types"
)

// ExtractPhones pulls outgoing numbers out of a get-phones payload.
// Only a JSON array is accepted; entries without a usable "phone" (a
// non-empty string or a non-zero number) are skipped and the rest is cut
// to max, keeping input order. dropped counts both skipped and truncated entries.
func ExtractPhones(data json.RawMessage, max int) (phones []string, dropped int) {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, 0
	}

	for _, raw := range entries {
		var record types.PhoneRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			dropped++
			continue
		}
		phone, ok := record.Number()
		if !ok {
			dropped++
			continue
		}
		phones = append(phones, phone)
	}

	if max > 0 && len(phones) > max {
		dropped += len(phones) - max
		phones = phones[:max]
	}
	return phones, dropped
}

// PhonesLoadedText is the notification shown after the dropdowns are refreshed
func PhonesLoadedText(n int) string {
	return fmt.Sprintf("✅ Loaded %d numbers", n)
}
