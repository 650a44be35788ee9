package values

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/complianceworks/sanctions-screening-backend/internal/domain/errors"
)

// EntityType classifies a sanctioned entity as a natural person or an organization
type EntityType struct {
	value string
}

// Supported entity types
const (
	EntityTypeIndividual   = "individual"
	EntityTypeOrganization = "organization"
)

var supportedEntityTypes = map[string]bool{
	EntityTypeIndividual:   true,
	EntityTypeOrganization: true,
}

// NewEntityType creates a new EntityType value object with validation
func NewEntityType(value string) (EntityType, error) {
	if value == "" {
		return EntityType{}, errors.NewValidationError("EMPTY_ENTITY_TYPE",
			"entity type cannot be empty")
	}

	normalized := strings.ToLower(strings.TrimSpace(value))

	// Source lists use "entity" for organizations
	if normalized == "entity" {
		normalized = EntityTypeOrganization
	}

	if !supportedEntityTypes[normalized] {
		return EntityType{}, errors.NewValidationError("UNSUPPORTED_ENTITY_TYPE",
			fmt.Sprintf("entity type '%s' is not supported", value))
	}

	return EntityType{value: normalized}, nil
}

// MustNewEntityType creates EntityType and panics on error (for constants/tests)
func MustNewEntityType(value string) EntityType {
	et, err := NewEntityType(value)
	if err != nil {
		panic(err)
	}
	return et
}

func IndividualEntityType() EntityType {
	return MustNewEntityType(EntityTypeIndividual)
}

func OrganizationEntityType() EntityType {
	return MustNewEntityType(EntityTypeOrganization)
}

// String returns the entity type string
func (et EntityType) String() string {
	return et.value
}

// IsValid checks if the entity type is valid
func (et EntityType) IsValid() bool {
	return et.value != "" && supportedEntityTypes[et.value]
}

// IsIndividual checks if the entity is a natural person
func (et EntityType) IsIndividual() bool {
	return et.value == EntityTypeIndividual
}

// IsOrganization checks if the entity is an organization
func (et EntityType) IsOrganization() bool {
	return et.value == EntityTypeOrganization
}

// Equal checks if two EntityType values are equal
func (et EntityType) Equal(other EntityType) bool {
	return et.value == other.value
}

// MarshalJSON implements JSON marshaling
func (et EntityType) MarshalJSON() ([]byte, error) {
	return json.Marshal(et.value)
}

// UnmarshalJSON implements JSON unmarshaling
func (et *EntityType) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	entityType, err := NewEntityType(value)
	if err != nil {
		return err
	}

	*et = entityType
	return nil
}
