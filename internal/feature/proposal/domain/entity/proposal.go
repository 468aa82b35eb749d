// Package entity defines the domain entities for the proposal feature.
package entity

// DocxContentType is the MIME type of the generated document format.
const DocxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Placeholder names resolved in uploaded templates. Tokens must appear
// literally with single-brace delimiters, e.g. {CUSTOMER}.
const (
	PlaceholderCustomer    = "CUSTOMER"
	PlaceholderDeparture   = "DEPARTURE"
	PlaceholderDestination = "DESTINATION"
	PlaceholderDate        = "DATE"
	PlaceholderOption1     = "OPTION1"
	PlaceholderOption2     = "OPTION2"
)

// ProposalRequest is the request-scoped set of charter details used to fill
// a proposal document. It is constructed from a request payload, consumed
// once and never persisted.
type ProposalRequest struct {
	CustomerName       string
	DepartureAirport   string
	DestinationAirport string
	DepartureDate      string
	AirplaneOption1    string
	AirplaneOption2    string
}

// Placeholders maps the placeholder names embedded in templates to the
// request field values.
func (r ProposalRequest) Placeholders() map[string]string {
	return map[string]string{
		PlaceholderCustomer:    r.CustomerName,
		PlaceholderDeparture:   r.DepartureAirport,
		PlaceholderDestination: r.DestinationAirport,
		PlaceholderDate:        r.DepartureDate,
		PlaceholderOption1:     r.AirplaneOption1,
		PlaceholderOption2:     r.AirplaneOption2,
	}
}

// MissingFields returns the request field names that are empty.
// All six fields are required for document generation.
func (r ProposalRequest) MissingFields() []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"customerName", r.CustomerName},
		{"departureAirport", r.DepartureAirport},
		{"destinationAirport", r.DestinationAirport},
		{"departureDate", r.DepartureDate},
		{"airplaneOption1", r.AirplaneOption1},
		{"airplaneOption2", r.AirplaneOption2},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Filename derives the download filename from the customer name.
func (r ProposalRequest) Filename() string {
	return r.CustomerName + "-charter-proposal.docx"
}

// GeneratedDocument is an in-memory binary artifact produced for a single
// request. It is streamed to the client and never stored server-side.
type GeneratedDocument struct {
	Filename    string
	ContentType string
	Data        []byte
}
