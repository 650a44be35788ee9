package values

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/complianceworks/sanctions-screening-backend/internal/domain/errors"
)

// ListSource identifies which government sanctions list an entity came from
type ListSource struct {
	source string
}

// Supported list sources
const (
	ListSourceOFAC = "ofac"
	ListSourceUN   = "un"
)

var (
	sourceDisplayNames = map[string]string{
		ListSourceOFAC: "OFAC Specially Designated Nationals List",
		ListSourceUN:   "UN Security Council Consolidated List",
	}

	supportedSources = map[string]bool{
		ListSourceOFAC: true,
		ListSourceUN:   true,
	}

	// Authority levels drive tie-breaks when the same entity appears on
	// both lists (higher number = higher authority for our jurisdiction)
	sourceAuthorityLevels = map[string]int{
		ListSourceOFAC: 2,
		ListSourceUN:   1,
	}
)

// NewListSource creates a new ListSource value object with validation
func NewListSource(source string) (ListSource, error) {
	if source == "" {
		return ListSource{}, errors.NewValidationError("EMPTY_LIST_SOURCE",
			"list source cannot be empty")
	}

	normalized := strings.ToLower(strings.TrimSpace(source))

	if !supportedSources[normalized] {
		return ListSource{}, errors.NewValidationError("UNSUPPORTED_LIST_SOURCE",
			fmt.Sprintf("list source '%s' is not supported", source))
	}

	return ListSource{source: normalized}, nil
}

// MustNewListSource creates ListSource and panics on error (for constants/tests)
func MustNewListSource(source string) ListSource {
	ls, err := NewListSource(source)
	if err != nil {
		panic(err)
	}
	return ls
}

// Standard list sources
func OFACListSource() ListSource {
	return MustNewListSource(ListSourceOFAC)
}

func UNListSource() ListSource {
	return MustNewListSource(ListSourceUN)
}

// String returns the source string
func (ls ListSource) String() string {
	return ls.source
}

// IsValid checks if the list source is valid
func (ls ListSource) IsValid() bool {
	return ls.source != "" && supportedSources[ls.source]
}

// IsEmpty checks if the source is empty
func (ls ListSource) IsEmpty() bool {
	return ls.source == ""
}

// Equal checks if two ListSource values are equal
func (ls ListSource) Equal(other ListSource) bool {
	return ls.source == other.source
}

// DisplayName returns the human-readable name for the source
func (ls ListSource) DisplayName() string {
	if name, ok := sourceDisplayNames[ls.source]; ok {
		return name
	}
	return strings.ToUpper(ls.source) + " Sanctions List"
}

// AuthorityLevel returns the authority level of the source (higher = more authoritative)
func (ls ListSource) AuthorityLevel() int {
	if level, ok := sourceAuthorityLevels[ls.source]; ok {
		return level
	}
	return 0
}

// IsOFAC checks if the source is the OFAC SDN list
func (ls ListSource) IsOFAC() bool {
	return ls.source == ListSourceOFAC
}

// IsUN checks if the source is the UN consolidated list
func (ls ListSource) IsUN() bool {
	return ls.source == ListSourceUN
}

// MarshalJSON implements JSON marshaling
func (ls ListSource) MarshalJSON() ([]byte, error) {
	return json.Marshal(ls.source)
}

// UnmarshalJSON implements JSON unmarshaling
func (ls *ListSource) UnmarshalJSON(data []byte) error {
	var source string
	if err := json.Unmarshal(data, &source); err != nil {
		return err
	}

	listSource, err := NewListSource(source)
	if err != nil {
		return err
	}

	*ls = listSource
	return nil
}

// GetSupportedSources returns all supported list sources
func GetSupportedSources() []string {
	return []string{ListSourceOFAC, ListSourceUN}
}
