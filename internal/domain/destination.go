// Package domain contains the core data types for the Tripfolio application.
// This package has zero internal dependencies and is imported by every other
// internal package (drive, service, handler).
//
// JSON tags follow the remote provider's field names (createdTime,
// webViewLink, mimeType) so aggregates serialize in the same shape the
// storage layer reads and writes.
package domain

// DefaultCategoryNames are the category folders created automatically inside
// every new destination. Custom category names are handled identically by all
// operations; these four are only a starting set.
var DefaultCategoryNames = []string{"Visa/Docs", "Air Tickets", "Hotels", "Transport"}

// Destination is one trip/plan aggregate, backed by one remote folder plus
// its sidecar metadata file. ID, Name, and CreatedTime always come from the
// folder; Categories come from the sub-folder tree; everything else lives in
// the sidecar.
type Destination struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Categories   []Category   `json:"categories"`
	Attractions  []Attraction `json:"attractions"`
	Plan         []PlanEntry  `json:"plan"`
	CreatedTime  string       `json:"createdTime"`
	TravelDate   string       `json:"travelDate,omitempty"`
	DueDate      string       `json:"dueDate,omitempty"`
	Participants []string     `json:"participants"`
	FlightOut    string       `json:"flightOut,omitempty"`
	FlightReturn string       `json:"flightReturn,omitempty"`
	Comment      string       `json:"comment,omitempty"`
	CoverImage   string       `json:"coverImage,omitempty"`
}

// Category is a named sub-folder under a destination holding a themed set of
// files (e.g. "Hotels").
type Category struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Files []DriveFile `json:"files"`
}

// DriveFile is one uploaded document. Created on upload, mutated only by
// rename, destroyed on delete — no versioning.
type DriveFile struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MimeType      string `json:"mimeType"`
	CreatedTime   string `json:"createdTime,omitempty"`
	WebViewLink   string `json:"webViewLink,omitempty"`
	ThumbnailLink string `json:"thumbnailLink,omitempty"`
	HasThumbnail  bool   `json:"hasThumbnail,omitempty"`
}

// Attraction is one point of interest on a destination's wish list.
// Attractions are appended, removed by id, and never mutated in place.
type Attraction struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	AddedAt     string `json:"addedAt"`
}

// PlanEntry is one itinerary activity with a date range. Entries are unique
// by id within a destination's plan; storage guarantees no order — consumers
// sort by start date for display.
type PlanEntry struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Location  string     `json:"location,omitempty"`
	StartDate string     `json:"startDate"`
	EndDate   string     `json:"endDate"`
	Notes     string     `json:"notes,omitempty"`
	Links     []PlanLink `json:"links,omitempty"`
	Color     string     `json:"color,omitempty"`
}

// PlanLink is an external reference attached to a plan entry
// (booking page, map pin, article).
type PlanLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Folder is a remote folder's identity as reported by the storage provider.
type Folder struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`
}
