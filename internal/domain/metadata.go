package domain

// Metadata is the sidecar file's shape: every destination field that is not
// represented by the folder tree itself. The sidecar store writes it
// wholesale — there is no partial update at the storage layer.
type Metadata struct {
	Attractions  []Attraction `json:"attractions"`
	Plan         []PlanEntry  `json:"plan"`
	TravelDate   string       `json:"travelDate"`
	DueDate      string       `json:"dueDate"`
	Participants []string     `json:"participants"`
	FlightOut    string       `json:"flightOut"`
	FlightReturn string       `json:"flightReturn"`
	Comment      string       `json:"comment"`
	CoverImage   string       `json:"coverImage"`
}

// DefaultMetadata returns the empty-but-non-nil metadata value used for brand
// new destinations and as the read-path substitute when a sidecar is absent
// or unreadable. Slices are allocated so JSON output is [] rather than null.
func DefaultMetadata() Metadata {
	return Metadata{
		Attractions:  []Attraction{},
		Plan:         []PlanEntry{},
		Participants: []string{},
	}
}

// MetadataPatch is an explicit partial update of the sidecar fields. A nil
// pointer leaves the corresponding field unchanged; a non-nil pointer
// replaces it wholesale. Adding a new sidecar field means adding it here and
// in Apply — there is deliberately no generic map merge.
type MetadataPatch struct {
	TravelDate   *string   `json:"travelDate,omitempty"`
	DueDate      *string   `json:"dueDate,omitempty"`
	Participants *[]string `json:"participants,omitempty"`
	FlightOut    *string   `json:"flightOut,omitempty"`
	FlightReturn *string   `json:"flightReturn,omitempty"`
	Comment      *string   `json:"comment,omitempty"`
	CoverImage   *string   `json:"coverImage,omitempty"`
}

// Apply merges the patch onto m field by field and returns the result.
// Attractions and Plan are never touched by a patch; they have their own
// operations.
func (p MetadataPatch) Apply(m Metadata) Metadata {
	if p.TravelDate != nil {
		m.TravelDate = *p.TravelDate
	}
	if p.DueDate != nil {
		m.DueDate = *p.DueDate
	}
	if p.Participants != nil {
		m.Participants = *p.Participants
	}
	if p.FlightOut != nil {
		m.FlightOut = *p.FlightOut
	}
	if p.FlightReturn != nil {
		m.FlightReturn = *p.FlightReturn
	}
	if p.Comment != nil {
		m.Comment = *p.Comment
	}
	if p.CoverImage != nil {
		m.CoverImage = *p.CoverImage
	}
	return m
}
