package entities

// ClassDefinition is an existing character class on the roster
type ClassDefinition struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	PowerVector PowerVector `json:"power_vector" yaml:"power_vector"`
}
