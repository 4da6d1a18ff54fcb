package market

// graphQLRequest is the outbound request body.
type graphQLRequest struct {
	Query string `json:"query"`
}

// itemsResponse represents the tarkov.dev GraphQL response envelope.
type itemsResponse struct {
	Errors []apiError `json:"errors,omitempty"`
	Data   *itemsData `json:"data"`
}

type apiError struct {
	Message string `json:"message"`
}

type itemsData struct {
	Items []itemPayload `json:"items"`
}

// itemPayload carries the single field the sync engine asks for. BasePrice
// is a pointer so a missing field is distinguishable from zero.
type itemPayload struct {
	BasePrice *float64 `json:"basePrice"`
}
